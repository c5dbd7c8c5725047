package recorder

import (
	"time"

	"TradeCraft/internal/model"
)

// SnapshotRow is one persisted dashboard refresh.
type SnapshotRow struct {
	Timestamp   time.Time      `json:"timestamp"`
	Symbol      string         `json:"symbol"`
	Price       float64        `json:"price"`
	Decision    model.Decision `json:"decision"`
	RSI14       float64        `json:"rsi14"`
	EMA20       float64        `json:"ema20"`
	OverlayLast float64        `json:"overlay_last"`
	SessionHigh float64        `json:"session_high"`
	SessionLow  float64        `json:"session_low"`
	ScalpSignal string         `json:"scalp_signal,omitempty"`
	Execute     string         `json:"execute,omitempty"`
}

// Recorder persists snapshot history for later analysis.
type Recorder interface {
	RecordSnapshot(snap *model.Snapshot) error
	RecordCheckpoints(board *model.CheckpointBoard) error
	Recent(symbol string, limit int) ([]SnapshotRow, error)
	// Prune deletes rows older than before and returns how many were removed.
	Prune(before time.Time) (int64, error)
	Close() error
}

// rowFromSnapshot flattens a snapshot into its history row.
func rowFromSnapshot(snap *model.Snapshot) SnapshotRow {
	row := SnapshotRow{
		Timestamp:   snap.FetchedAt,
		Symbol:      snap.Symbol,
		SessionHigh: snap.SessionHigh,
		SessionLow:  snap.SessionLow,
	}
	if a := snap.Analysis; a != nil {
		row.Price = a.Price
		row.Decision = a.Decision
		row.RSI14 = a.Indicators.RSI14
		row.EMA20 = a.Indicators.EMA20
	}
	if n := len(snap.Overlay); n > 0 {
		row.OverlayLast = snap.Overlay[n-1].Value
	}
	if adv := snap.Advanced; adv != nil {
		row.ScalpSignal = adv.ScalpSignal
		row.Execute = adv.Execute
	}
	if row.Timestamp.IsZero() {
		row.Timestamp = time.Now()
	}
	return row
}
