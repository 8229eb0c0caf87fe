// Package metrics exposes prometheus instruments for the HTTP surface and
// the estimation pipeline.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures instrument registration.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics bundles the application-level instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	estimatesRun  prometheus.Counter
	submissions   prometheus.Counter
	assistantCall *prometheus.CounterVec
	rateLimitHits *prometheus.CounterVec
}

// New registers the instruments on a private registry so tests can build
// isolated instances.
func New(cfg Config) *Metrics {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "solaris"
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: name,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: name,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		estimatesRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: name,
			Name:      "estimates_total",
			Help:      "Completed feasibility estimates.",
		}),
		submissions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: name,
			Name:      "submissions_total",
			Help:      "Persisted wizard submissions.",
		}),
		assistantCall: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: name,
			Name:      "assistant_calls_total",
			Help:      "Outbound assistant calls by outcome.",
		}, []string{"outcome"}),
		rateLimitHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: name,
			Name:      "rate_limit_total",
			Help:      "Rate limiter decisions by endpoint.",
		}, []string{"endpoint", "decision"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.estimatesRun,
		m.submissions,
		m.assistantCall,
		m.rateLimitHits,
	)
	return m
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" || route == "/metrics" {
			return
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// RecordEstimate increments completed estimate counts.
func (m *Metrics) RecordEstimate() {
	if m == nil {
		return
	}
	m.estimatesRun.Inc()
}

// RecordSubmission increments persisted submission counts.
func (m *Metrics) RecordSubmission() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

// RecordAssistantCall increments assistant call counts by outcome.
func (m *Metrics) RecordAssistantCall(outcome string) {
	if m == nil {
		return
	}
	m.assistantCall.WithLabelValues(strings.TrimSpace(outcome)).Inc()
}

// RecordRateLimit increments rate limiter decision counts.
func (m *Metrics) RecordRateLimit(endpoint, decision string) {
	if m == nil {
		return
	}
	m.rateLimitHits.WithLabelValues(strings.TrimSpace(endpoint), strings.TrimSpace(decision)).Inc()
}
