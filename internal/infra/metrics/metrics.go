// Package metrics exposes Prometheus collectors for domain operations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"minex/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "minex"

// Recorder owns a private registry so tests and multiple apps never collide on registration.
type Recorder struct {
	registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	relayEvents  *prometheus.CounterVec
}

// NewRecorder registers the MineX collectors plus the Go and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "domain",
				Name:      "operations_total",
				Help:      "Total number of domain operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"method", "route"},
		),
		relayEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "relay_events_total",
				Help:      "Notification events received by the relay worker.",
			},
			[]string{"kind"},
		),
	}

	r.registry.MustRegister(
		r.operations,
		r.httpRequests,
		r.httpDuration,
		r.relayEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// NewMetricsRecorder exposes the recorder through the domain interface.
func NewMetricsRecorder(r *Recorder) service.MetricsRecorder {
	return r
}

// RecordOperation counts one domain operation; err == nil is a success.
func (r *Recorder) RecordOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordHTTPRequest counts one request against its route template.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRelayEvent counts one event acknowledged by the relay worker.
func (r *Recorder) RecordRelayEvent(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	r.relayEvents.WithLabelValues(kind).Inc()
}

// Handler returns an HTTP handler exposing the registered metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
