// Package metrics holds the counters a scan run exports.
//
// A run is a short-lived batch, so nothing is served over HTTP; the
// registry is written to a node_exporter textfile when asked.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dojiwatch"

type Metrics struct {
	Registry *prometheus.Registry

	SymbolsScanned   prometheus.Counter
	FetchAttempts    *prometheus.CounterVec
	FetchFailures    *prometheus.CounterVec
	CandlesMissing   prometheus.Counter
	MatchesFound     *prometheus.CounterVec
	SymbolErrors     prometheus.Counter
	NotifyFailures   prometheus.Counter
	RunDuration      prometheus.Histogram
	LastRunTimestamp prometheus.Gauge
}

// New registers a fresh set of metrics on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		SymbolsScanned: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "symbols_total",
			Help:      "Symbols processed by the scanner",
		}),
		FetchAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "attempts_total",
			Help:      "Upstream fetch attempts by outcome",
		}, []string{"outcome"}),
		FetchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fetch",
			Name:      "failures_total",
			Help:      "Symbols for which no ticks could be fetched",
		}, []string{"reason"}),
		CandlesMissing: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "empty_window_total",
			Help:      "Symbols with no ticks inside the opening window",
		}),
		MatchesFound: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "matches_total",
			Help:      "Reported pattern matches by kind",
		}, []string{"kind"}),
		SymbolErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "symbol_errors_total",
			Help:      "Symbols abandoned because of an unexpected error",
		}),
		NotifyFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "failures_total",
			Help:      "Failed report deliveries",
		}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "duration_seconds",
			Help:      "Wall time of a scan run",
			Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200},
		}),
		LastRunTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scan",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last scan finished",
		}),
	}
}

// WriteTextfile writes the registry in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
