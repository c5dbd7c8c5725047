package notifier

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"TradeCraft/internal/metrics"
	"TradeCraft/internal/model"
)

// Alerter sends a message whenever the decision for a symbol changes.
// The first decision seen for a symbol is only remembered.
type Alerter struct {
	notifier Notifier
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu   sync.Mutex
	last map[string]model.Decision
}

func NewAlerter(n Notifier, m *metrics.Metrics, logger *zap.Logger) *Alerter {
	if n == nil {
		n = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Alerter{notifier: n, metrics: m, logger: logger.Named("alerter"), last: make(map[string]model.Decision)}
}

// Observe inspects a fresh snapshot and alerts on a decision change.
// Cached snapshots are ignored. It matches dashboard.Hook.
func (a *Alerter) Observe(ctx context.Context, snap *model.Snapshot) {
	if snap == nil || snap.Analysis == nil || snap.Stale {
		return
	}
	cur := snap.Analysis.Decision

	a.mu.Lock()
	prev, seen := a.last[snap.Symbol]
	a.last[snap.Symbol] = cur
	a.mu.Unlock()

	if !seen || prev == cur {
		return
	}

	text := FormatDecisionAlert(prev, snap) + "\n" + formatTime(snap.FetchedAt)
	if err := a.notifier.Notify(ctx, text); err != nil {
		a.logger.Error("send decision alert", zap.String("symbol", snap.Symbol), zap.Error(err))
		return
	}
	a.metrics.AlertSent()
	a.logger.Info("decision alert sent", zap.String("symbol", snap.Symbol),
		zap.String("from", string(prev)), zap.String("to", string(cur)))
}
