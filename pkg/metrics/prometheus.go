// Package metrics provides Prometheus metrics for the ticket bot.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels shared by fetch and resolve metrics.
const (
	OutcomeOK             = "ok"
	OutcomeNetworkFailure = "network_failure"
	OutcomeUpstreamError  = "upstream_error"
	OutcomeEmptyResult    = "empty_result"
	OutcomeTimeout        = "timeout"
	OutcomeBusy           = "busy"
	OutcomeCached         = "cached"
)

var defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 4, 6, 9, 12, 15}

// Manager owns every collector exported by the bot.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Resolution pipeline
	fetchTotal         *prometheus.CounterVec
	fetchDuration      *prometheus.HistogramVec
	resolveTotal       *prometheus.CounterVec
	resolveDuration    prometheus.Histogram
	resolveCandidates  prometheus.Histogram
	cacheLookups       *prometheus.CounterVec
	extractedAnchors   *prometheus.CounterVec
	rateLimiterWaiting prometheus.Gauge

	// Queue and workers
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec
	workersActive      prometheus.Gauge
	jobsProcessed      prometheus.Counter

	// Conversation
	interactions   *prometheus.CounterVec
	ticketsOpened  prometheus.Counter
	ticketItems    *prometheus.CounterVec
	sessionsActive prometheus.Gauge
	sessionsExpire prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry without default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "skinticket",
		subsystem:      "bot",
		latencyBuckets: defaultLatencyBuckets,
		constLabels:    map[string]string{},
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.fetchTotal = m.counterVec("fetch_total", "Upstream page fetches by endpoint and outcome", "endpoint", "outcome")
	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "fetch_duration_seconds",
		Help:        "Upstream page fetch latency",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint"})
	m.resolveTotal = m.counterVec("resolve_total", "Item resolutions by outcome", "outcome")
	m.resolveDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolve_duration_seconds",
		Help:        "Wall-clock time of a resolution as seen by the caller",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	})
	m.resolveCandidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "resolve_candidates",
		Help:        "Candidates returned per resolution",
		Buckets:     []float64{0, 1, 2, 3, 5, 8, 10, 15, 25},
		ConstLabels: m.constLabels,
	})
	m.cacheLookups = m.counterVec("cache_lookups_total", "Resolution cache lookups by result", "result")
	m.extractedAnchors = m.counterVec("extracted_candidates_total", "Raw candidates extracted by route", "route")
	m.rateLimiterWaiting = m.gauge("rate_limiter_waiting", "Fetches currently waiting on the upstream rate limiter")

	m.queueSize = m.gauge("queue_size", "Resolution jobs waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Resolution queue capacity")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total", "Rejected resolution jobs by reason", "reason")
	m.workersActive = m.gauge("workers_active", "Resolution workers running")
	m.jobsProcessed = m.counter("jobs_processed_total", "Resolution jobs completed by workers")

	m.interactions = m.counterVec("interactions_total", "Discord interactions handled", "kind", "outcome")
	m.ticketsOpened = m.counter("tickets_opened_total", "Ticket channels created")
	m.ticketItems = m.counterVec("ticket_items_total", "Items added to tickets by category", "category")
	m.sessionsActive = m.gauge("sessions_active", "Ticket sessions held in memory")
	m.sessionsExpire = m.counter("sessions_expired_total", "Ticket sessions removed by the janitor")

	m.httpRequests = m.counterVec("http_requests_total", "Admin HTTP requests", "endpoint", "method", "status")
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_seconds",
		Help:        "Admin HTTP request latency",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordFetch counts one upstream fetch and its latency.
func RecordFetch(endpoint, outcome string, seconds float64) {
	globalManager.fetchTotal.WithLabelValues(endpoint, outcome).Inc()
	globalManager.fetchDuration.WithLabelValues(endpoint).Observe(seconds)
}

// RecordResolve counts a resolution outcome and its caller-visible latency.
func RecordResolve(outcome string, seconds float64) {
	globalManager.resolveTotal.WithLabelValues(outcome).Inc()
	globalManager.resolveDuration.Observe(seconds)
}

// RecordCandidates observes the size of a returned candidate list.
func RecordCandidates(n int) {
	globalManager.resolveCandidates.Observe(float64(n))
}

// RecordCacheLookup counts a cache hit, miss or error.
func RecordCacheLookup(result string) {
	globalManager.cacheLookups.WithLabelValues(result).Inc()
}

// RecordExtracted counts a raw candidate produced by the named route.
func RecordExtracted(route string) {
	globalManager.extractedAnchors.WithLabelValues(route).Inc()
}

// AddRateLimiterWaiting moves the limiter wait gauge by delta.
func AddRateLimiterWaiting(delta float64) {
	globalManager.rateLimiterWaiting.Add(delta)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueueError counts a rejected job.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkersActive sets the number of running workers.
func UpdateWorkersActive(count int) {
	globalManager.workersActive.Set(float64(count))
}

// RecordJobProcessed counts a completed job.
func RecordJobProcessed() {
	globalManager.jobsProcessed.Inc()
}

// RecordInteraction counts a handled Discord interaction.
func RecordInteraction(kind, outcome string) {
	globalManager.interactions.WithLabelValues(kind, outcome).Inc()
}

// RecordTicketOpened counts a created ticket channel.
func RecordTicketOpened() {
	globalManager.ticketsOpened.Inc()
}

// RecordTicketItem counts an item added to a ticket.
func RecordTicketItem(category string) {
	globalManager.ticketItems.WithLabelValues(category).Inc()
}

// UpdateSessionsActive sets the number of live sessions.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordSessionsExpired counts sessions evicted by the janitor.
func RecordSessionsExpired(n int) {
	globalManager.sessionsExpire.Add(float64(n))
}

// RecordHTTPRequest records one admin HTTP request.
func RecordHTTPRequest(endpoint, method, status string, seconds float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(seconds)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
