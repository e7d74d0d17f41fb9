package cooperative

import (
	"github.com/vnykmshr/taskflow/pkg/metrics"
)

// NewSchedulerWithMetrics creates a round-robin scheduler whose resumes,
// yields, passes and live-task count are reported as Prometheus metrics
// under the given name.
func NewSchedulerWithMetrics[T any](name string, config metrics.Config) *Scheduler[T] {
	registry := metrics.DefaultRegistry
	if config.Registry != nil {
		registry = metrics.NewRegistry(config.Registry)
	}

	return NewSchedulerWithConfig(Config[T]{
		OnResume: func(id string, value T, completed bool) {
			registry.TaskResumes.WithLabelValues(name).Inc()
			if !completed {
				registry.TaskYields.WithLabelValues(name).Inc()
			}
		},
		OnPass: func(alive int) {
			registry.SchedulerPasses.WithLabelValues(name).Inc()
			registry.SchedulerTasksLive.WithLabelValues(name).Set(float64(alive))
		},
	})
}
