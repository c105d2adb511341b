// Package metrics exposes the daemon's optional Prometheus
// instrumentation. Grounded on the teacher's nil-safe metrics pattern
// (pkg/metrics/prometheus's NewCacheMetrics, which returns nil when
// disabled so callers pay zero overhead) combined with
// prometheus/client_golang's promauto registration helpers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is a nil-safe bundle of the daemon's Prometheus collectors.
// Every method has a nil receiver guard, so callers can invoke them
// unconditionally whether or not metrics collection is enabled.
type Metrics struct {
	registry *prometheus.Registry

	eventsProcessed    prometheus.Counter
	injectionFailures  prometheus.Counter
	tapHoldResolutions *prometheus.CounterVec
	processDuration    prometheus.Histogram
}

// New builds the daemon's metrics collectors against a fresh registry
// when enabled is true. It returns nil when disabled; every method on
// *Metrics tolerates a nil receiver, so engine and daemon code call
// into m unconditionally.
func New(enabled bool) *Metrics {
	if !enabled {
		return nil
	}

	reg := prometheus.NewRegistry()

	return &Metrics{
		registry: reg,

		eventsProcessed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "keyrxd_events_processed_total",
			Help: "Total number of physical key events processed by the engine.",
		}),
		injectionFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "keyrxd_injection_failures_total",
			Help: "Total number of output events that failed to inject.",
		}),
		tapHoldResolutions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "keyrxd_taphold_resolutions_total",
			Help: "Total number of tap-hold resolutions, partitioned by outcome kind.",
		}, []string{"kind"}),
		processDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name: "keyrxd_process_duration_seconds",
			Help: "Time spent turning one physical event into its output events.",
			Buckets: []float64{
				0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05,
			},
		}),
	}
}

// Registry returns the Prometheus registry backing m, for wiring into
// an HTTP handler. Returns nil when m is nil.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveEventProcessed records one physical event having been run
// through the engine.
func (m *Metrics) ObserveEventProcessed() {
	if m == nil {
		return
	}
	m.eventsProcessed.Inc()
}

// ObserveInjectionFailure records one output event that failed to
// inject into the OS.
func (m *Metrics) ObserveInjectionFailure() {
	if m == nil {
		return
	}
	m.injectionFailures.Inc()
}

// ObserveTapHoldResolution records a tap-hold key resolving, tagged by
// its outcome kind (e.g. "tap", "hold", "rolling").
func (m *Metrics) ObserveTapHoldResolution(kind string) {
	if m == nil {
		return
	}
	m.tapHoldResolutions.WithLabelValues(kind).Inc()
}

// ObserveProcessDuration records how long one call to the engine's
// Process took.
func (m *Metrics) ObserveProcessDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.processDuration.Observe(d.Seconds())
}
