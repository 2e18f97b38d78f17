package observability

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics exposes request-level prometheus instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	exports  *prometheus.CounterVec
}

// NewHTTPMetrics registers HTTP instruments on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return NewHTTPMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewHTTPMetricsWithRegistry registers on an explicit registry, which
// tests use to avoid duplicate registration across cases.
func NewHTTPMetricsWithRegistry(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "speedisha_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "speedisha_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "speedisha_exports_total",
			Help: "Invoice exports by format and outcome.",
		}, []string{"format", "outcome"}),
	}

	reg.MustRegister(m.requests, m.duration, m.exports)
	return m
}

// RecordExport counts one invoice export attempt.
func (m *HTTPMetrics) RecordExport(format, outcome string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(strings.TrimSpace(format), strings.TrimSpace(outcome)).Inc()
}

// MetricsMiddleware instruments inbound HTTP requests.
func MetricsMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
