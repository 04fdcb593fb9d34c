package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a metrics Manager.
type Option func(*Manager)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		m.namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		m.subsystem = subsystem
	}
}

// WithHistogramBuckets sets custom histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		m.histogramBuckets = buckets
	}
}

// WithMetricsEnabled toggles metrics collection.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithRefreshInterval sets the interval for periodic gauge refreshes.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.refreshInterval = interval
	}
}

// WithCustomLabels sets labels applied to all metrics.
func WithCustomLabels(labels map[string]string) Option {
	return func(m *Manager) {
		m.customLabels = labels
	}
}

// WithMetricPrefix sets a prefix for all metric names.
func WithMetricPrefix(prefix string) Option {
	return func(m *Manager) {
		m.metricPrefix = prefix
	}
}

// WithPrometheusRegistry sets the registry metrics are registered with.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		m.registry = registry
	}
}
