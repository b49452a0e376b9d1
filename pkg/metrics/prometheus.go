// Package metrics provides Prometheus metrics for the warp calculator.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the calculator.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	enabled        bool
	customLabels   map[string]string
	registry       prometheus.Registerer

	conversions       *prometheus.CounterVec
	errors            *prometheus.CounterVec
	warpFactor        prometheus.Histogram
	impulsePercent    prometheus.Histogram
	evaluationLatency prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "warp",
		subsystem:      "calculator",
		latencyBuckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		enabled:        true,
		customLabels:   make(map[string]string),
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.conversions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "conversions_total",
			Help:        "Total number of velocities parsed, by input unit",
			ConstLabels: labels,
		},
		[]string{"unit"},
	)

	m.errors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Total number of rejected evaluations, by error kind",
			ConstLabels: labels,
		},
		[]string{"kind"},
	)

	// Warp 1..10 is the meaningful range; 10 itself is unobtainable.
	m.warpFactor = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "warp_factor",
		Help:        "Distribution of computed warp factors",
		Buckets:     prometheus.LinearBuckets(1, 1, 10),
		ConstLabels: labels,
	})

	m.impulsePercent = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "impulse_percent",
		Help:        "Distribution of computed impulse percentages",
		Buckets:     []float64{1, 10, 25, 50, 75, 100, 200, 400},
		ConstLabels: labels,
	})

	m.evaluationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluation_latency_milliseconds",
		Help:        "Time spent parsing and deriving a single velocity",
		Buckets:     m.latencyBuckets,
		ConstLabels: labels,
	})
}

// RecordConversion increments the conversion counter for unit.
func (m *Manager) RecordConversion(unit string) {
	if !m.enabled {
		return
	}
	m.conversions.WithLabelValues(unit).Inc()
}

// RecordError increments the error counter for kind.
func (m *Manager) RecordError(kind string) {
	if !m.enabled {
		return
	}
	m.errors.WithLabelValues(kind).Inc()
}

// RecordWarpFactor observes a computed warp factor.
func (m *Manager) RecordWarpFactor(w float64) {
	if !m.enabled {
		return
	}
	m.warpFactor.Observe(w)
}

// RecordImpulsePercent observes a computed impulse percentage.
func (m *Manager) RecordImpulsePercent(p float64) {
	if !m.enabled {
		return
	}
	m.impulsePercent.Observe(p)
}

// RecordEvaluationLatency observes evaluation latency in milliseconds.
func (m *Manager) RecordEvaluationLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.evaluationLatency.Observe(latencyMs)
}

// Default returns the global manager.
func Default() *Manager {
	return globalManager
}

// RecordConversion increments the global conversion counter.
func RecordConversion(unit string) { globalManager.RecordConversion(unit) }

// RecordError increments the global error counter.
func RecordError(kind string) { globalManager.RecordError(kind) }

// RecordWarpFactor observes a warp factor on the global manager.
func RecordWarpFactor(w float64) { globalManager.RecordWarpFactor(w) }

// RecordImpulsePercent observes an impulse percentage on the global manager.
func RecordImpulsePercent(p float64) { globalManager.RecordImpulsePercent(p) }

// RecordEvaluationLatency observes evaluation latency on the global manager.
func RecordEvaluationLatency(latencyMs float64) { globalManager.RecordEvaluationLatency(latencyMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format, for pickup by a node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
