package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	Refreshes       *prometheus.CounterVec // labels: outcome={success,degraded}
	RefreshDuration prometheus.Histogram
	CacheLookups    *prometheus.CounterVec // labels: result={hit,miss,error}

	// Dataset gauges, set once after load.
	RecordsLoaded  prometheus.Gauge
	ShapesLoaded   prometheus.Gauge
	YearsAvailable prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Refreshes,
		m.RefreshDuration,
		m.CacheLookups,
		m.RecordsLoaded,
		m.ShapesLoaded,
		m.YearsAvailable,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mm_dashboard",
			Name:      "refreshes_total",
			Help:      "Dashboard view refreshes by outcome.",
		}, []string{"outcome"}),
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mm_dashboard",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete filter-aggregate-render cycle.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mm_dashboard",
			Name:      "view_cache_lookups_total",
			Help:      "View cache lookups by result.",
		}, []string{"result"}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mm_dashboard",
			Name:      "records_loaded",
			Help:      "Mortality records loaded at startup.",
		}),
		ShapesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mm_dashboard",
			Name:      "boundary_shapes_loaded",
			Help:      "Municipal boundary shapes loaded at startup.",
		}),
		YearsAvailable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mm_dashboard",
			Name:      "years_available",
			Help:      "Distinct years present in the dataset.",
		}),
	}
}
