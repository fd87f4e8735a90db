package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	catalogFetches *prometheus.CounterVec
	catalogRows    *prometheus.GaugeVec
	errorsTotal    *prometheus.CounterVec
	runLatency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		catalogFetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantdesk_catalog_fetches_total",
				Help: "Total number of upstream catalog fetches",
			},
			[]string{"category"},
		),
		catalogRows: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quantdesk_catalog_rows",
				Help: "Rows in the last fetched catalog snapshot",
			},
			[]string{"category"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantdesk_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		runLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quantdesk_run_duration_seconds",
				Help:    "Duration of strategy service runs in seconds",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"operation"},
		),
	}
}

// RecordCatalogFetch records one upstream snapshot fetch.
func (r *Recorder) RecordCatalogFetch(category string, rows int) {
	r.catalogFetches.WithLabelValues(category).Inc()
	r.catalogRows.WithLabelValues(category).Set(float64(rows))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRunLatency records strategy run latency in seconds.
func (r *Recorder) RecordRunLatency(op string, seconds float64) {
	r.runLatency.WithLabelValues(op).Observe(seconds)
}
