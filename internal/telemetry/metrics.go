// Package telemetry exposes Prometheus counters for the logging
// subsystem: lines emitted, sink write drops, and file rotations.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roadrec/dashlog/internal/logging"
)

// Metrics holds the subsystem's counters. Construct one per process with
// a dedicated registry; tests pass their own Registerer.
type Metrics struct {
	registry *prometheus.Registry

	linesEmitted  *prometheus.CounterVec
	writesDropped *prometheus.CounterVec
	rotations     *prometheus.CounterVec
}

// New creates the counters on a fresh Prometheus registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		linesEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashlog",
			Name:      "lines_emitted_total",
			Help:      "Log lines that passed a handle's severity gate.",
		}, []string{"logger", "level"}),
		writesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashlog",
			Name:      "writes_dropped_total",
			Help:      "Sink writes discarded because the sink failed.",
		}, []string{"logger", "sink"}),
		rotations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dashlog",
			Name:      "rotations_total",
			Help:      "Completed file sink rotations.",
		}, []string{"logger"}),
	}
}

// Hooks adapts the counters to the logging registry's observer interface.
func (m *Metrics) Hooks() logging.Hooks {
	return logging.Hooks{
		OnEmit: func(e logging.Entry) {
			m.linesEmitted.WithLabelValues(e.Logger, e.Level.String()).Inc()
		},
		OnDrop: func(logger, sinkKind string, err error) {
			m.writesDropped.WithLabelValues(logger, sinkKind).Inc()
		},
		OnRotate: func(logger, path string, backups int) {
			m.rotations.WithLabelValues(logger).Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gather exposes the raw registry for tests.
func (m *Metrics) Gather() prometheus.Gatherer { return m.registry }
