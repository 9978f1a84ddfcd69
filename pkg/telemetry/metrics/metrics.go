// Package metrics provides Prometheus instrumentation for mci's serve
// mode: validation outcomes, schema reloads, and HTTP request metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector registers and records all mci metrics against a single
// Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	validations     *prometheus.CounterVec
	warnings        *prometheus.CounterVec
	reloads         *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector. A nil registry gets a fresh private
// registry, which keeps concurrent servers in tests isolated.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci",
			Name:      "validations_total",
			Help:      "Schema validations by outcome (valid or invalid).",
		}, []string{"outcome"}),
		warnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci",
			Name:      "validation_warnings_total",
			Help:      "Advisory warnings emitted by validation runs.",
		}, []string{"check"}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci",
			Name:      "schema_reloads_total",
			Help:      "Schema reloads by result (ok or failed).",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mci",
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by path and status code.",
		}, []string{"path", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "mci",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		}, []string{"path"}),
	}

	registry.MustRegister(c.validations, c.warnings, c.reloads, c.httpRequests, c.requestDuration)
	return c
}

// RecordValidation records one validation run's outcome and warning count.
func (c *Collector) RecordValidation(valid bool, toolsetWarnings, commandWarnings int) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	c.validations.WithLabelValues(outcome).Inc()
	c.warnings.WithLabelValues("toolset_files").Add(float64(toolsetWarnings))
	c.warnings.WithLabelValues("commands").Add(float64(commandWarnings))
}

// RecordReload records a schema reload attempt.
func (c *Collector) RecordReload(ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	c.reloads.WithLabelValues(result).Inc()
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(path, code string, seconds float64) {
	c.httpRequests.WithLabelValues(path, code).Inc()
	c.requestDuration.WithLabelValues(path).Observe(seconds)
}

// Handler returns the Prometheus exposition handler for this collector's
// registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
