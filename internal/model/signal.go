package model

import "encoding/json"

// OptionStrike is the proposed options trade ticket.
type OptionStrike struct {
	Strike       int    `json:"strike"`
	StrikeLabel  string `json:"strike_label"` // "ATM" or "ITM"
	OptionType   string `json:"option_type"`  // "CE" or "PE"
	EstPremium   int    `json:"est_premium"`
	SLPoints     int    `json:"sl_points"`
	TargetPoints int    `json:"target_points"`
	PremiumValid bool   `json:"premium_valid"`
}

// AdvancedAnalysis is the payload of GET /api/v1/advanced-analyze.
type AdvancedAnalysis struct {
	PromptVersion   int                        `json:"prompt_version"`
	DateTime        string                     `json:"date_time"`
	Index           string                     `json:"index"`
	SpotPrice       float64                    `json:"spot_price"`
	ScalpSignal     string                     `json:"scalp_signal"`
	ThreeMinConfirm string                     `json:"three_min_confirm"`
	HTFTrend        string                     `json:"htf_trend"`
	TrendDirection  string                     `json:"trend_direction"`
	OptionStrike    *OptionStrike              `json:"option_strike"`
	Execute         string                     `json:"execute"`
	ExecuteReason   string                     `json:"execute_reason"`
	IsMarketOpen    bool                       `json:"is_market_open"`
	MarketMessage   string                     `json:"market_message"`
	StepsDetail     map[string]json.RawMessage `json:"steps_detail,omitempty"`
}
