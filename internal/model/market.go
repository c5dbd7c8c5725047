package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// OHLC represents a single candlestick bar as returned by the market API.
type OHLC struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// barTimeLayouts are the accepted encodings of a bar time; the backend emits
// ISO 8601 with or without a UTC offset.
var barTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
}

// ParseBarTime parses a bar timestamp; values without an offset are taken as UTC.
func ParseBarTime(s string) (time.Time, error) {
	for _, layout := range barTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised bar time %q", s)
}

func (b *OHLC) UnmarshalJSON(data []byte) error {
	type alias OHLC
	aux := struct {
		Time string `json:"time"`
		*alias
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t, err := ParseBarTime(aux.Time)
	if err != nil {
		return err
	}
	b.Time = t
	return nil
}

// EMAPoint is one value of a moving-average overlay line.
type EMAPoint struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Snapshot is everything the dashboard renders for one symbol.
type Snapshot struct {
	Symbol        string            `json:"symbol"`
	Analysis      *AnalyzeResult    `json:"analysis"`
	Advanced      *AdvancedAnalysis `json:"advanced,omitempty"`
	Overlay       []EMAPoint        `json:"overlay"`
	SessionHigh   float64           `json:"session_high"`
	SessionLow    float64           `json:"session_low"`
	RangePosition float64           `json:"range_position"` // 0 at SessionLow, 1 at SessionHigh
	FetchedAt     time.Time         `json:"fetched_at"`
	Stale         bool              `json:"stale"`
}
