// Package metrics exposes pipeline counters on a private Prometheus
// registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline instruments. The zero value is not usable;
// create one with New. A nil *Metrics is a valid no-op recorder.
type Metrics struct {
	registry *prometheus.Registry

	gestures       *prometheus.CounterVec
	actions        *prometheus.CounterVec
	actionErrors   *prometheus.CounterVec
	actionsDropped prometheus.Counter
	frameSeconds   prometheus.Histogram
}

// New registers the mudra instruments plus Go runtime and process
// collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gestures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mudra_gestures_total",
			Help: "Frames classified, by gesture.",
		}, []string{"gesture"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mudra_actions_total",
			Help: "Actions executed, by action.",
		}, []string{"action"}),
		actionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mudra_action_errors_total",
			Help: "Action executions that failed, by action.",
		}, []string{"action"}),
		actionsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_actions_dropped_total",
			Help: "Actions dropped because the execution queue was full.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mudra_frame_seconds",
			Help:    "Time spent detecting, classifying and dispatching one frame.",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5},
		}),
	}

	m.registry.MustRegister(
		m.gestures,
		m.actions,
		m.actionErrors,
		m.actionsDropped,
		m.frameSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Gesture counts one classified frame.
func (m *Metrics) Gesture(name string) {
	if m == nil {
		return
	}
	m.gestures.WithLabelValues(name).Inc()
}

// Action counts one executed action; err marks it failed.
func (m *Metrics) Action(name string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.actionErrors.WithLabelValues(name).Inc()
		return
	}
	m.actions.WithLabelValues(name).Inc()
}

// Dropped counts one action lost to a full queue.
func (m *Metrics) Dropped() {
	if m == nil {
		return
	}
	m.actionsDropped.Inc()
}

// Frame observes how long one frame took.
func (m *Metrics) Frame(d time.Duration) {
	if m == nil {
		return
	}
	m.frameSeconds.Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
