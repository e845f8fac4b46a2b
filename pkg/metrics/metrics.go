package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type AppMetrics struct {
	registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	activeConnections prometheus.Gauge
	taskOperations    *prometheus.CounterVec
	sessionOperations *prometheus.CounterVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	rateLimitHits     *prometheus.CounterVec
}

func NewAppMetrics() *AppMetrics {
	registry := prometheus.NewRegistry()

	m := &AppMetrics{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Number of active HTTP connections",
			},
		),
		taskOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_operations_total",
				Help: "Total number of task operations",
			},
			[]string{"operation"},
		),
		sessionOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_operations_total",
				Help: "Total number of signup/login/logout operations",
			},
			[]string{"operation"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"path"},
		),
		cacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"path"},
		),
		rateLimitHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_limit_hits_total",
				Help: "Total number of rate limited requests",
			},
			[]string{"path"},
		),
	}

	registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.activeConnections,
		m.taskOperations,
		m.sessionOperations,
		m.cacheHits,
		m.cacheMisses,
		m.rateLimitHits,
	)

	return m
}

func (m *AppMetrics) RecordTaskOperation(operation string) {
	if m == nil {
		return
	}

	m.taskOperations.WithLabelValues(operation).Inc()
}

func (m *AppMetrics) RecordSessionOperation(operation string) {
	if m == nil {
		return
	}

	m.sessionOperations.WithLabelValues(operation).Inc()
}

func (m *AppMetrics) RecordCacheHit(path string) {
	if m == nil {
		return
	}

	m.cacheHits.WithLabelValues(path).Inc()
}

func (m *AppMetrics) RecordCacheMiss(path string) {
	if m == nil {
		return
	}

	m.cacheMisses.WithLabelValues(path).Inc()
}

func (m *AppMetrics) RecordRateLimitHit(path string) {
	if m == nil {
		return
	}

	m.rateLimitHits.WithLabelValues(path).Inc()
}

// Handler serves the registry for the /metrics endpoint.
func (m *AppMetrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func (m *AppMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		m.activeConnections.Inc()
		defer m.activeConnections.Dec()

		c.Next()

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		status := strconv.Itoa(c.Writer.Status())

		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
