// Package metrics provides Prometheus metrics for the pulsecheck scoring engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the scoring engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Batch metrics
	batchesStarted   prometheus.Counter
	batchesCompleted prometheus.Counter
	batchDuration    prometheus.Histogram
	subjectsInFlight prometheus.Gauge
	workerCount      prometheus.Gauge

	// Scoring metrics
	subjectsScored     prometheus.Counter
	textScoreLatency   prometheus.Histogram
	scoringErrors      prometheus.Counter
	signalsAbsent      *prometheus.CounterVec
	reportStoreErrors  prometheus.Counter
	subjectsDuplicate  prometheus.Counter

	// Capability error metrics
	fetchErrors prometheus.Counter
	ocrErrors   prometheus.Counter
	imageErrors prometheus.Counter
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
		namespace:        "pulsecheck",
		subsystem:        "batch",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.batchesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_started_total",
		Help:      "Total number of batch runs started",
	})

	m.batchesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_completed_total",
		Help:      "Total number of batch runs that published a report",
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of whole-batch duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.subjectsInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subjects_in_flight",
		Help:      "Number of subject pipelines currently executing",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Configured batch concurrency limit",
	})

	m.subjectsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subjects_scored_total",
		Help:      "Total number of subjects scored across all batches",
	})

	m.textScoreLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "text_score_latency_milliseconds",
		Help:      "Histogram of per-text scoring latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.scoringErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_errors_total",
		Help:      "Total number of per-text scoring errors",
	})

	m.signalsAbsent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "signals_absent_total",
			Help:      "Total number of absent signals by signal name",
		},
		[]string{"signal"},
	)

	m.reportStoreErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_store_errors_total",
		Help:      "Total number of report store append errors",
	})

	m.subjectsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subjects_duplicate_total",
		Help:      "Total number of duplicate subjects skipped per batch input",
	})

	m.fetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_errors_total",
		Help:      "Total number of subject fetch failures",
	})

	m.ocrErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ocr_errors_total",
		Help:      "Total number of skipped OCR enhancements",
	})

	m.imageErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "image_errors_total",
		Help:      "Total number of skipped brightness enhancements",
	})
}

// Package-level helpers act on the global manager.

// RecordBatchStarted increments the started-batches counter.
func RecordBatchStarted() {
	globalManager.batchesStarted.Inc()
}

// RecordBatchCompleted increments the completed-batches counter.
func RecordBatchCompleted() {
	globalManager.batchesCompleted.Inc()
}

// RecordBatchDuration records a whole-batch duration in milliseconds.
func RecordBatchDuration(durationMs float64) {
	globalManager.batchDuration.Observe(durationMs)
}

// UpdateSubjectsInFlight sets the in-flight subject gauge.
func UpdateSubjectsInFlight(count int) {
	globalManager.subjectsInFlight.Set(float64(count))
}

// AddSubjectsInFlight adjusts the in-flight subject gauge by delta.
func AddSubjectsInFlight(delta int) {
	globalManager.subjectsInFlight.Add(float64(delta))
}

// UpdateWorkerCount sets the configured concurrency limit gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordSubjectScored increments the scored-subjects counter.
func RecordSubjectScored() {
	globalManager.subjectsScored.Inc()
}

// RecordTextScoreLatency records one text-scoring latency in milliseconds.
func RecordTextScoreLatency(latencyMs float64) {
	globalManager.textScoreLatency.Observe(latencyMs)
}

// RecordScoringError increments the scoring-errors counter.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordSignalAbsent increments the absent counter for a signal name.
func RecordSignalAbsent(signal string) {
	globalManager.signalsAbsent.WithLabelValues(signal).Inc()
}

// RecordReportStoreError increments the report store error counter.
func RecordReportStoreError() {
	globalManager.reportStoreErrors.Inc()
}

// RecordSubjectDuplicate increments the duplicate-subjects counter.
func RecordSubjectDuplicate() {
	globalManager.subjectsDuplicate.Inc()
}

// RecordFetchError increments the fetch-errors counter.
func RecordFetchError() {
	globalManager.fetchErrors.Inc()
}

// RecordOCRError increments the OCR-errors counter.
func RecordOCRError() {
	globalManager.ocrErrors.Inc()
}

// RecordImageError increments the image-errors counter.
func RecordImageError() {
	globalManager.imageErrors.Inc()
}

// GetRegistry returns the custom registry used by the global manager, for
// mounting a /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
