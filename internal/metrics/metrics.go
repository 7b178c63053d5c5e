// Package metrics provides the Prometheus metrics for the portfolio service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jaq-h/portfolio-service/internal/content"
)

// MetricsNamespace is the namespace for all service metrics.
const MetricsNamespace = "portfolio"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	RequestsTotal          *prometheus.CounterVec
	RequestDurationSeconds *prometheus.HistogramVec

	ContentFallbacksTotal *prometheus.CounterVec
	VerificationsTotal    *prometheus.CounterVec
	UploadsTotal          *prometheus.CounterVec
	RevalidationsTotal    prometheus.Counter
}

// New creates and registers all service metrics.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: MetricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		ContentFallbacksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "content_fallbacks_total",
				Help:      "Content resolutions served from a tier below the remote store",
			},
			[]string{"key", "tier"},
		),
		VerificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "captcha_verifications_total",
				Help:      "Captcha verification attempts by outcome",
			},
			[]string{"outcome"},
		),
		UploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "uploads_total",
				Help:      "Media uploads by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		RevalidationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: MetricsNamespace,
				Name:      "revalidations_total",
				Help:      "Accepted revalidation requests",
			},
		),
	}
}

// RecordFallback implements content.FallbackRecorder.
func (m *Metrics) RecordFallback(key content.Key, tier string) {
	m.ContentFallbacksTotal.WithLabelValues(string(key), tier).Inc()
}

// RecordVerification counts one verification attempt outcome.
func (m *Metrics) RecordVerification(outcome string) {
	m.VerificationsTotal.WithLabelValues(outcome).Inc()
}

// RecordUpload counts one upload attempt outcome.
func (m *Metrics) RecordUpload(uploadType, outcome string) {
	m.UploadsTotal.WithLabelValues(uploadType, outcome).Inc()
}

// Middleware returns a Gin middleware recording request count and latency.
// Paths are recorded by route template so path cardinality stays bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
		m.RequestDurationSeconds.WithLabelValues(
			c.Request.Method, path,
		).Observe(time.Since(start).Seconds())
	}
}
