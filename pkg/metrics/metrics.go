// Package metrics provides Prometheus instrumentation for taskflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskflow components.
type Registry struct {
	// Worker Pool Metrics
	TasksSubmitted        *prometheus.CounterVec
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TaskPanicsRecovered   *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	WorkerPoolSize        *prometheus.GaugeVec
	WorkerPoolActive      *prometheus.GaugeVec
	WorkerPoolQueued      *prometheus.GaugeVec

	// Task Queue Metrics
	QueuePushes        *prometheus.CounterVec
	QueuePops          *prometheus.CounterVec
	QueueDepth         *prometheus.GaugeVec
	QueueBlockedPushes *prometheus.CounterVec

	// Parallel Unit Metrics
	UnitsSpawned   *prometheus.CounterVec
	UnitsCompleted *prometheus.CounterVec
	UnitsFailed    *prometheus.CounterVec

	// Cooperative Scheduler Metrics
	TaskResumes        *prometheus.CounterVec
	TaskYields         *prometheus.CounterVec
	SchedulerPasses    *prometheus.CounterVec
	SchedulerTasksLive *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by taskflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Worker Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that failed",
			},
			[]string{"pool_name"},
		),

		TaskPanicsRecovered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "task_panics_recovered_total",
				Help:      "Total number of task panics recovered at the worker boundary",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of workers currently executing tasks",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks",
			},
			[]string{"pool_name"},
		),

		// Task Queue Metrics
		QueuePushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "pushes_total",
				Help:      "Total number of queue push operations",
			},
			[]string{"queue_name"},
		),

		QueuePops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "pops_total",
				Help:      "Total number of queue pop operations",
			},
			[]string{"queue_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of buffered items",
			},
			[]string{"queue_name"},
		),

		QueueBlockedPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "blocked_pushes_total",
				Help:      "Total number of push operations that had to block",
			},
			[]string{"queue_name"},
		),

		// Parallel Unit Metrics
		UnitsSpawned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "parallel",
				Name:      "units_spawned_total",
				Help:      "Total number of isolated units spawned",
			},
			[]string{"processor_name"},
		),

		UnitsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "parallel",
				Name:      "units_completed_total",
				Help:      "Total number of units that completed successfully",
			},
			[]string{"processor_name"},
		),

		UnitsFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "parallel",
				Name:      "units_failed_total",
				Help:      "Total number of units whose computation failed",
			},
			[]string{"processor_name"},
		),

		// Cooperative Scheduler Metrics
		TaskResumes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "cooperative",
				Name:      "task_resumes_total",
				Help:      "Total number of task resume operations",
			},
			[]string{"scheduler_name"},
		),

		TaskYields: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "cooperative",
				Name:      "task_yields_total",
				Help:      "Total number of task yield points hit",
			},
			[]string{"scheduler_name"},
		),

		SchedulerPasses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "cooperative",
				Name:      "scheduler_passes_total",
				Help:      "Total number of round-robin scheduler passes",
			},
			[]string{"scheduler_name"},
		),

		SchedulerTasksLive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "cooperative",
				Name:      "tasks_live",
				Help:      "Number of registered tasks not yet completed",
			},
			[]string{"scheduler_name"},
		),
	}
}
