package model

import "time"

// Decision is the simple intraday trade call from the analyze endpoint.
type Decision string

const (
	DecisionBuy  Decision = "BUY"
	DecisionSell Decision = "SELL"
	DecisionHold Decision = "HOLD"
)

type Bollinger struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

type MACD struct {
	Line      float64 `json:"macd_line"`
	Signal    float64 `json:"signal_line"`
	Histogram float64 `json:"histogram"`
}

// IndicatorData holds the technical indicators computed by the backend.
type IndicatorData struct {
	EMA20     float64   `json:"ema20"`
	RSI14     float64   `json:"rsi14"`
	VWAP      float64   `json:"vwap"`
	Bollinger Bollinger `json:"bollinger"`
	MACD      MACD      `json:"macd"`
}

// AnalyzeResult is the payload of GET /api/v1/analyze.
type AnalyzeResult struct {
	Symbol     string        `json:"symbol"`
	Price      float64       `json:"price"`
	Indicators IndicatorData `json:"indicators"`
	Decision   Decision      `json:"decision"`
	Reasoning  []string      `json:"reasoning"`
	Timestamp  time.Time     `json:"timestamp"`
	Candles    []OHLC        `json:"candles"`
}
