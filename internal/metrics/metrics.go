// Package metrics holds the Prometheus instruments for data refreshes and fallbacks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	Refreshes     *prometheus.CounterVec   // labels: target, result
	RefreshDur    *prometheus.HistogramVec // labels: target
	Fallbacks     *prometheus.CounterVec   // labels: resource, reason
	WSClients     prometheus.Gauge
	AlertsSent    prometheus.Counter
	SnapshotStale prometheus.Gauge

	Registry *prometheus.Registry
}

// NewMetrics registers and returns all metrics on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradecraft_refreshes_total",
			Help: "Data refresh cycles by target and result",
		}, []string{"target", "result"}),
		RefreshDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tradecraft_refresh_duration_seconds",
			Help:    "Duration of a refresh cycle",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"target"}),
		Fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradecraft_fallbacks_total",
			Help: "Responses substituted with fallback data",
		}, []string{"resource", "reason"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradecraft_ws_clients",
			Help: "Connected WebSocket clients",
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradecraft_alerts_sent_total",
			Help: "Decision alerts delivered to Telegram",
		}),
		SnapshotStale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tradecraft_snapshot_stale",
			Help: "1 when the dashboard is showing a cached snapshot",
		}),
		Registry: prometheus.NewRegistry(),
	}

	m.Registry.MustRegister(
		m.Refreshes,
		m.RefreshDur,
		m.Fallbacks,
		m.WSClients,
		m.AlertsSent,
		m.SnapshotStale,
	)
	return m
}

// ObserveRefresh records one refresh cycle.
func (m *Metrics) ObserveRefresh(target string, seconds float64, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Refreshes.WithLabelValues(target, result).Inc()
	m.RefreshDur.WithLabelValues(target).Observe(seconds)
}

// ObserveFallback records a fallback substitution.
func (m *Metrics) ObserveFallback(resource, reason string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(resource, reason).Inc()
}

// SetStale flags whether the dashboard is serving a cached snapshot.
func (m *Metrics) SetStale(stale bool) {
	if m == nil {
		return
	}
	if stale {
		m.SnapshotStale.Set(1)
	} else {
		m.SnapshotStale.Set(0)
	}
}

// AlertSent counts a delivered decision alert.
func (m *Metrics) AlertSent() {
	if m == nil {
		return
	}
	m.AlertsSent.Inc()
}

// ClientDelta adjusts the connected WebSocket client gauge.
func (m *Metrics) ClientDelta(n int) {
	if m == nil {
		return
	}
	m.WSClients.Add(float64(n))
}
