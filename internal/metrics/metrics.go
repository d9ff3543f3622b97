// Package metrics counts what the engine loaded and answered. A CLI process
// is short-lived, so the registry is exported as a node_exporter textfile
// rather than scraped.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Query kinds used as label values.
const (
	KindTendencies = "tendencies"
	KindOffense    = "predict_offense"
	KindDefense    = "predict_defense"
)

// Recorder holds the counters on a private registry.
type Recorder struct {
	registry     *prometheus.Registry
	rowsLoaded   prometheus.Counter
	rowsRejected prometheus.Counter
	queries      *prometheus.CounterVec
	noMatch      *prometheus.CounterVec
	tendencies   prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		rowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_rows_loaded_total",
			Help: "Play rows accepted into the store.",
		}),
		rowsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scout_rows_rejected_total",
			Help: "Play rows rejected at load for an invalid dataset type or down.",
		}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scout_queries_total",
			Help: "Engine queries answered, by kind.",
		}, []string{"kind"}),
		noMatch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scout_no_match_total",
			Help: "Predictions that found no historical match, by kind.",
		}, []string{"kind"}),
		tendencies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "scout_tendency_groups",
			Help: "Qualifying groups in the last tendency report.",
		}),
	}
	r.registry.MustRegister(r.rowsLoaded, r.rowsRejected, r.queries, r.noMatch, r.tendencies)
	return r
}

// Loaded records a finished load.
func (r *Recorder) Loaded(accepted, rejected int) {
	r.rowsLoaded.Add(float64(accepted))
	r.rowsRejected.Add(float64(rejected))
}

// Tendencies records a tendency report with n qualifying groups.
func (r *Recorder) Tendencies(n int) {
	r.queries.WithLabelValues(KindTendencies).Inc()
	r.tendencies.Set(float64(n))
}

// Prediction records a prediction of the given kind.
func (r *Recorder) Prediction(kind string, matched bool) {
	r.queries.WithLabelValues(kind).Inc()
	if !matched {
		r.noMatch.WithLabelValues(kind).Inc()
	}
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the registry in text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
