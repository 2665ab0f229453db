package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds the Prometheus metrics for the API.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	operationsTotal     *prometheus.CounterVec
	embedTruncatedTotal prometheus.Counter
}

// NewMetrics creates the metric set on a private registry, so multiple
// server instances (and tests) do not collide on registration.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixelveil_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pixelveil_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pixelveil_steg_operations_total",
				Help: "Total number of embed and extract operations",
			},
			[]string{"op", "status"},
		),

		embedTruncatedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "pixelveil_embed_truncated_total",
				Help: "Embeds whose payload exceeded the cover image capacity",
			},
		),
	}
}

// Registry exposes the private registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOperation counts one embed or extract outcome.
func (m *Metrics) RecordOperation(op, status string) {
	m.operationsTotal.WithLabelValues(op, status).Inc()
}

// RecordTruncation counts an embed that had to drop payload bits.
func (m *Metrics) RecordTruncation() {
	m.embedTruncatedTotal.Inc()
}

// statusRecorder captures the response status for instrumentation.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentHandler wraps a handler with request counting and latency
// observation for a fixed route label.
func (m *Metrics) InstrumentHandler(method, endpoint string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		h(rec, r)

		m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(rec.status)).Inc()
		m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	}
}
