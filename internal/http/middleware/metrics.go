// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for HTTP traffic. Labels are
// bounded: the path label is the registered Gin route (e.g.
// /api/v1/systems/reservations/make/:client_type), never the raw URL, except
// for unmatched requests.
package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds the HTTP collectors.
type HTTPMetrics struct {
	reqs     *prometheus.CounterVec
	lat      *prometheus.HistogramVec
	inflight prometheus.Gauge
	size     *prometheus.HistogramVec
	replays  *prometheus.CounterVec
}

// NewHTTPMetrics registers the collectors on reg. Registering twice on the
// same registry reuses the collectors already there.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		reqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		lat: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"method", "path"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		}),
		size: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}, []string{"method", "path"}),
		replays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_idempotent_replays_total",
			Help: "Responses served from the idempotency store.",
		}, []string{"path"}),
	}
	m.reqs = register(reg, m.reqs)
	m.lat = register(reg, m.lat)
	m.inflight = register(reg, m.inflight)
	m.size = register(reg, m.size)
	m.replays = register(reg, m.replays)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Handler instruments each request: count and latency by route, response
// size, in-flight gauge, and idempotent replays.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.inflight.Inc()
		defer m.inflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		m.reqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.lat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size >= 0 {
			m.size.WithLabelValues(method, path).Observe(float64(size))
		}
		if IsReplay(c) {
			m.replays.WithLabelValues(path).Inc()
		}
	}
}
