// Package metrics collects Prometheus metrics for the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector counts requests per route and outcome on a private registry.
type Collector struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration prometheus.Histogram
	authRejections  prometheus.Counter
}

// NewCollector creates a collector with its own registry, so process-wide
// default metrics do not leak into the exposition.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	return &Collector{
		registry: registry,
		requestsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests served, by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request handling latency",
			Buckets: prometheus.DefBuckets,
		}),
		authRejections: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "auth_rejections_total",
			Help: "Requests rejected by the authentication gate",
		}),
	}
}

// RecordRequest counts one served request.
func (m *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.Observe(duration.Seconds())
	if status == http.StatusUnauthorized {
		m.authRejections.Inc()
	}
}

// Handler returns the exposition endpoint for the collector's registry.
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
