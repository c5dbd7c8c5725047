package model

import "encoding/json"

// CheckpointMeta describes one fixed capture time of the trading day.
type CheckpointMeta struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Time  string `json:"time"`
}

// CheckpointData is the decision snapshot captured at a checkpoint.
type CheckpointData struct {
	CapturedAt      string          `json:"captured_at"`
	IsMarketOpen    bool            `json:"is_market_open"`
	MarketMessage   string          `json:"market_message"`
	SpotPrice       float64         `json:"spot_price"`
	ScalpSignal     string          `json:"scalp_signal"`
	ThreeMinConfirm string          `json:"three_min_confirm"`
	HTFTrend        string          `json:"htf_trend"`
	TrendDirection  string          `json:"trend_direction"`
	Execute         json.RawMessage `json:"execute"`
	ExecuteReason   string          `json:"execute_reason"`
	OptionStrike    *OptionStrike   `json:"option_strike"`
}

// CheckpointPanel is one slot of the board; Data is nil until captured.
type CheckpointPanel struct {
	ID    string          `json:"id"`
	Label string          `json:"label"`
	Time  string          `json:"time"`
	Data  *CheckpointData `json:"data"`
}

// CheckpointBoard is the payload of GET /api/v1/checkpoints.
type CheckpointBoard struct {
	Date   string            `json:"date"`
	Symbol string            `json:"symbol"`
	Panels []CheckpointPanel `json:"panels"`
	Meta   []CheckpointMeta  `json:"checkpoints_meta"`
}

// Checkpoints are the seven capture times (IST) of the trading day.
var Checkpoints = []CheckpointMeta{
	{ID: "0915", Label: "Market Open", Time: "09:15"},
	{ID: "0930", Label: "Opening Range", Time: "09:30"},
	{ID: "1000", Label: "Morning Trend", Time: "10:00"},
	{ID: "1130", Label: "Mid-Morning", Time: "11:30"},
	{ID: "1300", Label: "Lunch Lull", Time: "13:00"},
	{ID: "1400", Label: "Afternoon Setup", Time: "14:00"},
	{ID: "1500", Label: "Power Hour", Time: "15:00"},
}
