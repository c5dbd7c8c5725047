package recorder

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"TradeCraft/internal/model"
)

func openTemp(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sub", "history.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func snapAt(sym string, ts time.Time, price float64) *model.Snapshot {
	return &model.Snapshot{
		Symbol: sym,
		Analysis: &model.AnalyzeResult{
			Symbol:     sym,
			Price:      price,
			Decision:   model.DecisionSell,
			Indicators: model.IndicatorData{RSI14: 42, EMA20: price + 1},
		},
		Advanced:    &model.AdvancedAnalysis{ScalpSignal: "🔴 SELL", Execute: "YES"},
		Overlay:     []model.EMAPoint{{Time: ts, Value: 10}, {Time: ts, Value: 11.5}},
		SessionHigh: price + 10,
		SessionLow:  price - 10,
		FetchedAt:   ts,
	}
}

func TestSQLiteRecorder_RecordAndRecent(t *testing.T) {
	r := openTemp(t)
	base := time.Date(2026, 2, 20, 4, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := r.RecordSnapshot(snapAt("^NSEI", base.Add(time.Duration(i)*time.Minute), float64(100+i))); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	r.RecordSnapshot(snapAt("^BSESN", base, 500))

	rows, err := r.Recent("^NSEI", 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Price != 102 || rows[1].Price != 101 {
		t.Errorf("expected newest first, got %+v", rows)
	}
	if rows[0].Decision != model.DecisionSell || rows[0].OverlayLast != 11.5 || rows[0].Execute != "YES" {
		t.Errorf("unexpected row %+v", rows[0])
	}
}

func TestSQLiteRecorder_Prune(t *testing.T) {
	r := openTemp(t)
	old := time.Now().Add(-48 * time.Hour)
	r.RecordSnapshot(snapAt("^NSEI", old, 100))
	r.RecordSnapshot(snapAt("^NSEI", time.Now(), 101))

	n, err := r.Prune(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 pruned row, got %d", n)
	}
	rows, _ := r.Recent("^NSEI", 10)
	if len(rows) != 1 || rows[0].Price != 101 {
		t.Errorf("unexpected remaining rows %+v", rows)
	}
}

func TestSQLiteRecorder_RecordCheckpointsOncePerDay(t *testing.T) {
	r := openTemp(t)
	board := &model.CheckpointBoard{
		Date:   "2026-02-20",
		Symbol: "^NSEI",
		Panels: []model.CheckpointPanel{
			{ID: "0915", Data: &model.CheckpointData{SpotPrice: 1, Execute: json.RawMessage(`true`)}},
			{ID: "0930"},
		},
	}
	for i := 0; i < 2; i++ {
		if err := r.RecordCheckpoints(board); err != nil {
			t.Fatalf("record checkpoints: %v", err)
		}
	}
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM checkpoint_captures`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 capture, got %d", count)
	}
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	if err := r.RecordSnapshot(nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if rows, err := r.Recent("^NSEI", 5); err != nil || rows != nil {
		t.Errorf("unexpected result %v %v", rows, err)
	}
}
