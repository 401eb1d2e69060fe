// Package metrics provides Prometheus metrics for the benchboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the benchboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Core Business Metrics - score submissions are what matters here
	scoresAccepted prometheus.Counter
	scoresRejected prometheus.Counter
	scoresDeleted  prometheus.Counter
	submitLatency  prometheus.Histogram

	// Persistence Metrics - every accepted mutation writes the full document
	persistOps     prometheus.Counter
	persistErrors  prometheus.Counter
	persistLatency prometheus.Histogram

	// Identity Metrics - best-effort display name resolution
	identityLookups      prometheus.Counter
	identityLookupErrors prometheus.Counter

	// Operational Health Metrics
	categoriesTotal prometheus.Gauge
	entriesTotal    prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "benchboard",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.scoresAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_accepted_total",
		Help:      "Total number of score submissions that improved a personal best",
	})

	m.scoresRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_rejected_total",
		Help:      "Total number of score submissions rejected for not beating the stored best",
	})

	m.scoresDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_deleted_total",
		Help:      "Total number of scores removed by admin delete operations",
	})

	m.submitLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submit_latency_milliseconds",
		Help:      "Histogram of score submission latency in milliseconds (includes persist)",
		Buckets:   m.histogramBuckets,
	})

	m.persistOps = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_operations_total",
		Help:      "Total number of full-document persist operations",
	})

	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_errors_total",
		Help:      "Total number of failed persist operations (mutations rolled back)",
	})

	m.persistLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persist_latency_milliseconds",
		Help:      "Histogram of persist operation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.identityLookups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "identity_lookups_total",
		Help:      "Total number of display name lookups during rendering",
	})

	m.identityLookupErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "identity_lookup_errors_total",
		Help:      "Total number of display name lookups that failed (entry skipped)",
	})

	m.categoriesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "categories_total",
		Help:      "Total number of benchmark categories with at least one score",
	})

	m.entriesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_total",
		Help:      "Total number of (category, user) best-score entries",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordScoreAccepted increments the accepted submissions counter.
func RecordScoreAccepted() {
	globalManager.scoresAccepted.Inc()
}

// RecordScoreRejected increments the rejected submissions counter.
func RecordScoreRejected() {
	globalManager.scoresRejected.Inc()
}

// RecordScoreDeleted adds n to the deleted scores counter.
func RecordScoreDeleted(n int) {
	globalManager.scoresDeleted.Add(float64(n))
}

// RecordSubmitLatency observes a submission latency in milliseconds.
func RecordSubmitLatency(latencyMs float64) {
	globalManager.submitLatency.Observe(latencyMs)
}

// RecordPersist increments the persist operations counter.
func RecordPersist() {
	globalManager.persistOps.Inc()
}

// RecordPersistError increments the persist error counter.
func RecordPersistError() {
	globalManager.persistErrors.Inc()
}

// RecordPersistLatency observes a persist latency in milliseconds.
func RecordPersistLatency(latencyMs float64) {
	globalManager.persistLatency.Observe(latencyMs)
}

// RecordIdentityLookup increments the identity lookup counter.
func RecordIdentityLookup() {
	globalManager.identityLookups.Inc()
}

// RecordIdentityLookupError increments the identity lookup error counter.
func RecordIdentityLookupError() {
	globalManager.identityLookupErrors.Inc()
}

// UpdateCategoriesTotal sets the categories gauge.
func UpdateCategoriesTotal(count int) {
	globalManager.categoriesTotal.Set(float64(count))
}

// UpdateEntriesTotal sets the entries gauge.
func UpdateEntriesTotal(count int) {
	globalManager.entriesTotal.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
