// Package metrics records countdown activity as Prometheus metrics.
//
// There is no scrape endpoint. Metrics are written in the text exposition
// format to a file (for a node_exporter textfile collector) when the program
// exits.
package metrics

import (
	"github.com/fentz26/blanktimer/internal/countdown"
	"github.com/fentz26/blanktimer/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the countdown metrics on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	finished    *prometheus.CounterVec
	remaining   prometheus.Gauge
	progress    prometheus.Gauge
}

// NewRecorder creates and registers the countdown metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blanktimer",
			Subsystem: "countdown",
			Name:      "transitions_total",
			Help:      "State changes applied to the countdown, by event.",
		}, []string{"event"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "blanktimer",
			Subsystem: "countdown",
			Name:      "finished_total",
			Help:      "Countdowns that reached a terminal status, by status.",
		}, []string{"status"}),
		remaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blanktimer",
			Subsystem: "countdown",
			Name:      "remaining_seconds",
			Help:      "Remaining time of the current countdown.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "blanktimer",
			Subsystem: "countdown",
			Name:      "progress_ratio",
			Help:      "Remaining time divided by total duration.",
		}),
	}
	r.registry.MustRegister(r.transitions, r.finished, r.remaining, r.progress)
	return r
}

// Observe records one engine snapshot. Pass it to Engine.Subscribe.
func (r *Recorder) Observe(s countdown.Snapshot) {
	r.transitions.WithLabelValues(string(s.Event)).Inc()
	r.remaining.Set(s.Remaining.Seconds())
	r.progress.Set(s.Progress)

	// A completed timer emits no further snapshots until it is restarted, so
	// every Completed snapshot is the moment of completion.
	switch s.Status {
	case models.TimerStatusCancelled, models.TimerStatusCompleted:
		r.finished.WithLabelValues(string(s.Status)).Inc()
	}
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes all metrics to path in the Prometheus text format.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
