package wpbridge

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector mirrors the in-process Stats counters to Prometheus for
// deployments that scrape. It is optional; a nil collector is a no-op. Safe
// for concurrent use.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	rateLimitHits   prometheus.Counter
	authFailures    prometheus.Counter
	errorsTotal     *prometheus.CounterVec
}

// NewMetricsCollector registers the collector's metrics on the default
// registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry registers on the supplied registerer;
// tests pass a private registry to avoid duplicate-registration panics.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "wpbridge_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wpbridge_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "wpbridge_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method"},
		),
		rateLimitHits: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "wpbridge_rate_limit_hits_total",
				Help: "Total number of 429 responses observed",
			},
		),
		authFailures: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "wpbridge_auth_failures_total",
				Help: "Total number of 401/403 responses observed",
			},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "wpbridge_errors_total",
				Help: "Total number of failed requests",
			},
			[]string{"method"},
		),
	}
}

func (m *MetricsCollector) recordRequest(method string, statusCode int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *MetricsCollector) recordRetry(method string) {
	if m == nil {
		return
	}
	m.retriesTotal.WithLabelValues(method).Inc()
}

func (m *MetricsCollector) recordRateLimitHit() {
	if m == nil {
		return
	}
	m.rateLimitHits.Inc()
}

func (m *MetricsCollector) recordAuthFailure() {
	if m == nil {
		return
	}
	m.authFailures.Inc()
}

func (m *MetricsCollector) recordError(method string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(method).Inc()
}
