package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the FARS
// pipeline operations.
type Metrics struct {
	DatasetsRead   prometheus.Counter
	ReadErrors     prometheus.Counter
	RowsLoaded     prometheus.Counter
	YearsSkipped   prometheus.Counter
	SummariesBuilt prometheus.Counter
	MapsRendered   prometheus.Counter

	ReadDuration prometheus.Histogram
	MapPoints    prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetsRead,
		m.ReadErrors,
		m.RowsLoaded,
		m.YearsSkipped,
		m.SummariesBuilt,
		m.MapsRendered,
		m.ReadDuration,
		m.MapPoints,
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
		DatasetsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "datasets_read_total",
			Help:      "Total accident dataset files read successfully.",
		}),
		ReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "dataset_read_errors_total",
			Help:      "Total dataset read failures (missing files and parse errors).",
		}),
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "rows_loaded_total",
			Help:      "Total accident rows projected into (month, year) observations.",
		}),
		YearsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "years_skipped_total",
			Help:      "Requested years skipped because of a missing file or invalid year value.",
		}),
		SummariesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "summaries_built_total",
			Help:      "Total monthly summaries built.",
		}),
		MapsRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fars",
			Name:      "maps_rendered_total",
			Help:      "Total state accident maps rendered.",
		}),
		ReadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "dataset_read_duration_seconds",
			Help:      "Duration of a single dataset file read and parse.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		MapPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fars",
			Name:      "map_points",
			Help:      "Number of plottable points per rendered state map.",
			Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
	}
}
