package keydist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the operational counters and gauges exposed by a
// [Distributor]. No per-key labels are used - arbitrary caller-supplied
// keys would otherwise produce unbounded label cardinality.
type Metrics struct {
	TasksSubmitted prometheus.Counter
	TasksExecuted  prometheus.Counter
	TasksFailed    prometheus.Counter
	Yields         prometheus.Counter
	ActiveWorkers  prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TasksSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "keydist",
			Name:      "tasks_submitted_total",
			Help:      "Tasks enqueued via addTask, across all keys.",
		}),
		TasksExecuted: f.NewCounter(prometheus.CounterOpts{
			Namespace: "keydist",
			Name:      "tasks_executed_total",
			Help:      "Tasks that finished running, successfully or not.",
		}),
		TasksFailed: f.NewCounter(prometheus.CounterOpts{
			Namespace: "keydist",
			Name:      "tasks_failed_total",
			Help:      "Tasks that returned an error or panicked.",
		}),
		Yields: f.NewCounter(prometheus.CounterOpts{
			Namespace: "keydist",
			Name:      "worker_yields_total",
			Help:      "Times a worker re-dispatched itself after maxTasksPerCycle.",
		}),
		ActiveWorkers: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "keydist",
			Name:      "active_workers",
			Help:      "Number of keys with a worker currently installed in the distributor's map.",
		}),
	}
}
