package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRefresh(t *testing.T) {
	m := NewMetrics()
	m.ObserveRefresh("dashboard", 0.2, nil)
	m.ObserveRefresh("dashboard", 0.3, errors.New("boom"))
	m.ObserveRefresh("dashboard", 0.1, nil)

	if got := testutil.ToFloat64(m.Refreshes.WithLabelValues("dashboard", "ok")); got != 2 {
		t.Errorf("expected 2 ok refreshes, got %v", got)
	}
	if got := testutil.ToFloat64(m.Refreshes.WithLabelValues("dashboard", "error")); got != 1 {
		t.Errorf("expected 1 failed refresh, got %v", got)
	}
}

func TestObserveFallback(t *testing.T) {
	m := NewMetrics()
	m.ObserveFallback("videos", "not_configured")
	if got := testutil.ToFloat64(m.Fallbacks.WithLabelValues("videos", "not_configured")); got != 1 {
		t.Errorf("expected 1 fallback, got %v", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRefresh("x", 1, nil)
	m.ObserveFallback("x", "y")
	m.SetStale(true)
	m.AlertSent()
	m.ClientDelta(1)
}

func TestGauges(t *testing.T) {
	m := NewMetrics()
	m.SetStale(true)
	if got := testutil.ToFloat64(m.SnapshotStale); got != 1 {
		t.Errorf("expected stale gauge 1, got %v", got)
	}
	m.SetStale(false)
	if got := testutil.ToFloat64(m.SnapshotStale); got != 0 {
		t.Errorf("expected stale gauge 0, got %v", got)
	}
	m.ClientDelta(1)
	m.ClientDelta(1)
	m.ClientDelta(-1)
	if got := testutil.ToFloat64(m.WSClients); got != 1 {
		t.Errorf("expected 1 client, got %v", got)
	}
	m.AlertSent()
	if got := testutil.ToFloat64(m.AlertsSent); got != 1 {
		t.Errorf("expected 1 alert, got %v", got)
	}
}
