// Package metrics provides Prometheus metrics for the boxscore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Season pipeline
	seasonReloads   *prometheus.CounterVec
	reloadDuration  prometheus.Histogram
	eventsLoaded    prometheus.Gauge
	reloadTriggers  *prometheus.CounterVec
	pendingReloads  prometheus.Gauge
	eventsDuplicate prometheus.Counter
	matchesScored   prometheus.Counter
	ledgerRecords   prometheus.Gauge
	warnings        *prometheus.CounterVec

	// Standings store
	standingsSize  prometheus.Gauge
	standingsQuery *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "boxscore",
		subsystem:        "season",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		ConstLabels: m.constLabels, Buckets: m.histogramBuckets,
	}
}

//nolint:funlen // one registration per collector
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.seasonReloads = auto.NewCounterVec(
		m.counterOpts("reloads_total", "Season reloads by result"),
		[]string{"result"},
	)
	m.reloadDuration = auto.NewHistogram(
		m.histogramOpts("reload_duration_seconds", "Time to load, score and publish a season"),
	)
	m.reloadTriggers = auto.NewCounterVec(
		m.counterOpts("reload_triggers_total", "Reload requests offered to the scheduler by reason and outcome"),
		[]string{"reason", "outcome"},
	)
	m.pendingReloads = auto.NewGauge(
		m.gaugeOpts("pending_reloads", "Reload requests waiting for the scheduler"),
	)
	m.eventsLoaded = auto.NewGauge(
		m.gaugeOpts("events_loaded", "Events in the current season"),
	)
	m.eventsDuplicate = auto.NewCounter(
		m.counterOpts("events_duplicate_total", "Events dropped as duplicates during load"),
	)
	m.matchesScored = auto.NewCounter(
		m.counterOpts("matches_scored_total", "Matches whose participants resolved and were scored"),
	)
	m.ledgerRecords = auto.NewGauge(
		m.gaugeOpts("ledger_records", "Ledger records in the current season"),
	)
	m.warnings = auto.NewCounterVec(
		m.counterOpts("warnings_total", "Non-fatal scoring diagnostics by kind"),
		[]string{"kind"},
	)

	m.standingsSize = auto.NewGauge(
		m.gaugeOpts("standings_wrestlers", "Wrestlers in the standings"),
	)
	m.standingsQuery = auto.NewHistogramVec(
		m.histogramOpts("standings_query_duration_seconds", "Standings read latency by operation"),
		[]string{"operation"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_seconds", "HTTP request duration"),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
}

// RecordReload counts a finished reload; result is "ok" or "error".
func RecordReload(result string, seconds float64) {
	globalManager.seasonReloads.WithLabelValues(result).Inc()
	globalManager.reloadDuration.Observe(seconds)
}

// RecordReloadTrigger counts a reload request; outcome is "queued",
// "coalesced" or "closed".
func RecordReloadTrigger(reason, outcome string) {
	globalManager.reloadTriggers.WithLabelValues(reason, outcome).Inc()
}

// UpdatePendingReloads sets the number of queued reload requests.
func UpdatePendingReloads(count int) {
	globalManager.pendingReloads.Set(float64(count))
}

// UpdateEventsLoaded sets the number of events in the current season.
func UpdateEventsLoaded(count int) {
	globalManager.eventsLoaded.Set(float64(count))
}

// RecordEventsDuplicate adds n dropped duplicate events.
func RecordEventsDuplicate(n int) {
	globalManager.eventsDuplicate.Add(float64(n))
}

// RecordMatchesScored adds n scored matches.
func RecordMatchesScored(n int) {
	globalManager.matchesScored.Add(float64(n))
}

// UpdateLedgerRecords sets the ledger size.
func UpdateLedgerRecords(count int) {
	globalManager.ledgerRecords.Set(float64(count))
}

// RecordWarning counts one diagnostic of the given kind.
func RecordWarning(kind string) {
	globalManager.warnings.WithLabelValues(kind).Inc()
}

// UpdateStandingsSize sets the number of ranked wrestlers.
func UpdateStandingsSize(count int) {
	globalManager.standingsSize.Set(float64(count))
}

// RecordStandingsQuery observes a standings read.
func RecordStandingsQuery(operation string, seconds float64) {
	globalManager.standingsQuery.WithLabelValues(operation).Observe(seconds)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// RecordErrorByComponent counts an error raised inside a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error returned by an HTTP endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
