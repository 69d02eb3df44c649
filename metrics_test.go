package main

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testutilGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	return testutil.ToFloat64(g)
}

// sharedTestMetrics is the one Metrics value shared by every test in this
// package, since promauto registers every gauge/histogram against the default
// registry and a second registration of the same metric name panics.
var sharedTestMetrics *Metrics

func testMetrics() *Metrics {
	if sharedTestMetrics == nil {
		sharedTestMetrics = NewMetrics()
	}
	return sharedTestMetrics
}

func TestMetricsObserveAndHandler(t *testing.T) {
	m := testMetrics()

	summary := TickSummary{
		PendingFlowerRequests: 4,
		TickDurationMS:        12.5,
		CountsByType:          map[string]int{"flower": 3, "insect": 2},
	}
	m.Observe(summary)

	if got := testutilGaugeValue(t, m.pendingFlowerRequests); got != 4 {
		t.Errorf("expected pending flower requests gauge 4, got %v", got)
	}
	if got := testutilGaugeValue(t, m.actorCount.WithLabelValues("flower")); got != 3 {
		t.Errorf("expected flower actor count gauge 3, got %v", got)
	}

	if m.Handler() == nil {
		t.Fatal("expected a non-nil metrics HTTP handler")
	}
}
