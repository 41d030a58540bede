package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Default histogram buckets for operation durations (in seconds).
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// PrometheusRecorder implements Recorder on top of a dedicated Prometheus
// registry so the client's metrics never collide with the host
// application's collectors.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	readsTotal         *prometheus.CounterVec
	writesTotal        *prometheus.CounterVec
	retriesTotal       *prometheus.CounterVec
	invalidationsTotal *prometheus.CounterVec
	invalidatedKeys    *prometheus.CounterVec
	readDuration       *prometheus.HistogramVec
	writeDuration      *prometheus.HistogramVec
}

// NewPrometheusRecorder builds a Recorder backed by a fresh registry.
// namespace prefixes every metric name; nil buckets use the defaults.
func NewPrometheusRecorder(namespace string, buckets []float64) *PrometheusRecorder {
	if len(buckets) == 0 {
		buckets = defaultBuckets
	}

	registry := prometheus.NewRegistry()

	r := &PrometheusRecorder{
		registry: registry,

		readsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reads_total",
				Help:      "Total cached read operations by resource, operation and cache outcome",
			},
			[]string{"resource", "operation", "outcome"},
		),

		writesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "writes_total",
				Help:      "Total write operations by resource, operation and status",
			},
			[]string{"resource", "operation", "status"},
		),

		retriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "read_retries_total",
				Help:      "Total read retry attempts by resource and operation",
			},
			[]string{"resource", "operation"},
		),

		invalidationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invalidations_total",
				Help:      "Total cache invalidation events by resource",
			},
			[]string{"resource"},
		),

		invalidatedKeys: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invalidated_keys_total",
				Help:      "Total cache keys dropped by invalidation events",
			},
			[]string{"resource"},
		),

		readDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "read_duration_seconds",
				Help:      "Cached read latency by resource and operation",
				Buckets:   buckets,
			},
			[]string{"resource", "operation"},
		),

		writeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "write_duration_seconds",
				Help:      "Write latency by resource and operation",
				Buckets:   buckets,
			},
			[]string{"resource", "operation"},
		),
	}

	registry.MustRegister(
		r.readsTotal,
		r.writesTotal,
		r.retriesTotal,
		r.invalidationsTotal,
		r.invalidatedKeys,
		r.readDuration,
		r.writeDuration,
	)

	return r
}

// RecordRead implements Recorder.
func (r *PrometheusRecorder) RecordRead(resource, operation string, hit bool, duration time.Duration) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.readsTotal.WithLabelValues(resource, operation, outcome).Inc()
	r.readDuration.WithLabelValues(resource, operation).Observe(duration.Seconds())
}

// RecordWrite implements Recorder.
func (r *PrometheusRecorder) RecordWrite(resource, operation string, failed bool, duration time.Duration) {
	status := "ok"
	if failed {
		status = "error"
	}
	r.writesTotal.WithLabelValues(resource, operation, status).Inc()
	r.writeDuration.WithLabelValues(resource, operation).Observe(duration.Seconds())
}

// RecordRetry implements Recorder.
func (r *PrometheusRecorder) RecordRetry(resource, operation string) {
	r.retriesTotal.WithLabelValues(resource, operation).Inc()
}

// RecordInvalidation implements Recorder.
func (r *PrometheusRecorder) RecordInvalidation(resource string, keys int) {
	r.invalidationsTotal.WithLabelValues(resource).Inc()
	r.invalidatedKeys.WithLabelValues(resource).Add(float64(keys))
}

// Registry exposes the underlying registry for callers that combine it
// with their own collectors.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an http.Handler serving the recorder's metrics in the
// Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
