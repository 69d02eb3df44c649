package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the engine's runtime health to Prometheus scraping,
// enriching the spec's backpressure observability requirement (§5: "a counter
// of pending requests is exposed in the summary") with a proper /metrics
// endpoint built on prometheus/client_golang.
type Metrics struct {
	pendingFlowerRequests prometheus.Gauge
	tickDuration          prometheus.Histogram
	actorCount            *prometheus.GaugeVec
}

// NewMetrics registers the engine's gauges and histograms against the default
// Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{
		pendingFlowerRequests: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "evogarden_pending_flower_requests",
			Help: "Number of flower-factory requests not yet completed.",
		}),
		tickDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "evogarden_tick_duration_seconds",
			Help:    "Wall-clock duration of one simulation tick.",
			Buckets: prometheus.DefBuckets,
		}),
		actorCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "evogarden_actor_count",
			Help: "Number of actors currently on the grid, by type.",
		}, []string{"type"}),
	}
}

// Observe records one tick's summary into the registered metrics.
func (m *Metrics) Observe(summary TickSummary) {
	m.pendingFlowerRequests.Set(float64(summary.PendingFlowerRequests))
	m.tickDuration.Observe(summary.TickDurationMS / 1000.0)
	for actorType, count := range summary.CountsByType {
		m.actorCount.WithLabelValues(actorType).Set(float64(count))
	}
}

// Handler returns the HTTP handler to mount at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
