// Package metrics collects per-run gameplay counters with Prometheus and
// exports them as a node_exporter textfile when the game exits.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns a private registry with the game's metrics.
// A disabled Manager accepts every call and records nothing.
type Manager struct {
	namespace string
	enabled   bool
	registry  *prometheus.Registry

	sessions      prometheus.Counter
	shots         prometheus.Counter
	hits          prometheus.Counter
	persistErrors prometheus.Counter
	score         prometheus.Histogram
	accuracy      prometheus.Histogram
	lastScore     prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithMetricsEnabled enables or disables metrics collection.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "sato2d",
		enabled:   true,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)
	m.sessions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sessions_total",
		Help:      "Number of finished play sessions",
	})
	m.shots = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "shots_total",
		Help:      "Mouse clicks registered while playing",
	})
	m.hits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "hits_total",
		Help:      "Clicks that landed on the active target",
	})
	m.persistErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "persist_errors_total",
		Help:      "Results that could not be written to the results store",
	})
	m.score = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "session_score",
		Help:      "Final score per session",
		Buckets:   prometheus.ExponentialBuckets(100, 2, 10),
	})
	m.accuracy = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "session_accuracy",
		Help:      "Displayed accuracy per session (x2 scaled, 0-200)",
		Buckets:   prometheus.LinearBuckets(0, 25, 9),
	})
	m.lastScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_session_score",
		Help:      "Final score of the most recent session",
	})
	return m
}

// Enabled reports whether the manager records anything.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// Registry exposes the underlying registry as a Gatherer.
func (m *Manager) Registry() prometheus.Gatherer {
	return m.registry
}

// RecordShot counts one click while playing.
func (m *Manager) RecordShot() {
	if m.enabled {
		m.shots.Inc()
	}
}

// RecordHit counts one target hit.
func (m *Manager) RecordHit() {
	if m.enabled {
		m.hits.Inc()
	}
}

// RecordSession records the outcome of a finished session.
func (m *Manager) RecordSession(score int, accuracy float64, persisted bool) {
	if !m.enabled {
		return
	}
	m.sessions.Inc()
	m.score.Observe(float64(score))
	m.accuracy.Observe(accuracy)
	m.lastScore.Set(float64(score))
	if !persisted {
		m.persistErrors.Inc()
	}
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is written atomically so a scraping node_exporter never sees a partial file.
func (m *Manager) WriteTextfile(path string) error {
	if !m.enabled {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return nil
}
