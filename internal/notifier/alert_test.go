package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"TradeCraft/internal/metrics"
	"TradeCraft/internal/model"
)

type recordingNotifier struct {
	sent []string
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, text string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, text)
	return nil
}

func decisionSnap(sym string, d model.Decision) *model.Snapshot {
	return &model.Snapshot{
		Symbol: sym,
		Analysis: &model.AnalyzeResult{
			Symbol:    sym,
			Price:     22510.5,
			Decision:  d,
			Reasoning: []string{"Price above VWAP"},
		},
		Advanced: &model.AdvancedAnalysis{
			OptionStrike: &model.OptionStrike{Strike: 22500, StrikeLabel: "ATM", OptionType: "CE", EstPremium: 120, SLPoints: 30, TargetPoints: 60},
		},
		FetchedAt: time.Date(2026, 2, 20, 4, 0, 0, 0, time.UTC),
	}
}

func TestAlerter_OnlyOnChange(t *testing.T) {
	rec := &recordingNotifier{}
	m := metrics.NewMetrics()
	a := NewAlerter(rec, m, zap.NewNop())
	ctx := context.Background()

	a.Observe(ctx, decisionSnap("^NSEI", model.DecisionHold))
	a.Observe(ctx, decisionSnap("^NSEI", model.DecisionHold))
	if len(rec.sent) != 0 {
		t.Fatalf("no alert expected without a change, got %v", rec.sent)
	}

	a.Observe(ctx, decisionSnap("^NSEI", model.DecisionBuy))
	if len(rec.sent) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(rec.sent))
	}
	if !strings.Contains(rec.sent[0], "HOLD → BUY") || !strings.Contains(rec.sent[0], "22,510.5") {
		t.Errorf("unexpected alert text %q", rec.sent[0])
	}
	if !strings.Contains(rec.sent[0], "22500 CE (ATM)") {
		t.Errorf("option strike missing from %q", rec.sent[0])
	}
	if got := testutil.ToFloat64(m.AlertsSent); got != 1 {
		t.Errorf("expected alert metric 1, got %v", got)
	}

	// Symbols are tracked independently.
	a.Observe(ctx, decisionSnap("^NSEBANK", model.DecisionSell))
	if len(rec.sent) != 1 {
		t.Error("first decision for a new symbol must not alert")
	}
}

func TestAlerter_IgnoresStale(t *testing.T) {
	rec := &recordingNotifier{}
	a := NewAlerter(rec, nil, zap.NewNop())
	a.Observe(context.Background(), decisionSnap("^NSEI", model.DecisionHold))

	s := decisionSnap("^NSEI", model.DecisionBuy)
	s.Stale = true
	a.Observe(context.Background(), s)
	if len(rec.sent) != 0 {
		t.Error("stale snapshots must not alert")
	}
}

func TestAlerter_SendError(t *testing.T) {
	rec := &recordingNotifier{err: errors.New("down")}
	m := metrics.NewMetrics()
	a := NewAlerter(rec, m, zap.NewNop())
	a.Observe(context.Background(), decisionSnap("^NSEI", model.DecisionHold))
	a.Observe(context.Background(), decisionSnap("^NSEI", model.DecisionSell))
	if got := testutil.ToFloat64(m.AlertsSent); got != 0 {
		t.Errorf("failed sends must not count, got %v", got)
	}
}

func TestFormatStatus(t *testing.T) {
	if got := FormatStatus(nil); !strings.Contains(got, "No market data") {
		t.Errorf("unexpected empty status %q", got)
	}
	s := decisionSnap("^NSEI", model.DecisionBuy)
	s.Overlay = []model.EMAPoint{{Value: 22490.12}}
	s.Advanced.ScalpSignal = "🟢 BUY CE"
	got := FormatStatus(s)
	if !strings.Contains(got, "🟢 BUY") || !strings.Contains(got, "22490.12") || !strings.Contains(got, "🟢 BUY CE") {
		t.Errorf("unexpected status %q", got)
	}
}

func TestFormatVideos(t *testing.T) {
	got := FormatVideos(model.ChannelStats{SubscriberCount: "24,500", VideoCount: "142", ViewCount: "1.2M"},
		[]model.Video{{Title: "A", PublishedAt: "Jan 2, 2026"}}, true)
	if !strings.Contains(got, "24,500 subscribers") || !strings.Contains(got, "1. A (Jan 2, 2026)") || !strings.Contains(got, "sample data") {
		t.Errorf("unexpected videos text %q", got)
	}
}
