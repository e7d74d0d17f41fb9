package parallel

import (
	"context"

	"github.com/vnykmshr/taskflow/pkg/metrics"
)

// ProcessResultsWithMetrics is ProcessResults with Prometheus counters for
// spawned, completed and failed units, reported under the given name.
func ProcessResultsWithMetrics[T, R any](ctx context.Context, cfg Config, name string, metricsConfig metrics.Config, items []T, fn func(T) (R, error)) []UnitResult[R] {
	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	registry.UnitsSpawned.WithLabelValues(name).Add(float64(len(items)))

	results := ProcessResults(ctx, cfg, items, fn)

	for _, r := range results {
		if r.Err != nil {
			registry.UnitsFailed.WithLabelValues(name).Inc()
		} else {
			registry.UnitsCompleted.WithLabelValues(name).Inc()
		}
	}

	return results
}
