package cooperative

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/taskflow/internal/testutil"
	"github.com/vnykmshr/taskflow/pkg/metrics"
)

func TestNewSchedulerWithMetrics(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	sched := NewSchedulerWithMetrics[int]("test-sched", metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})

	sched.Add(NewTask("a", func(ctx context.Context, yield YieldFunc[int]) (int, error) {
		yield(1)
		return 2, nil
	}))
	sched.Add(NewTask("b", func(ctx context.Context, yield YieldFunc[int]) (int, error) {
		return 3, nil
	}))

	testutil.AssertNoError(t, sched.Run(ctx))

	results := sched.Results()
	testutil.AssertEqual(t, len(results), 2)
	testutil.AssertEqual(t, results[0].Value, 2)
	testutil.AssertEqual(t, results[1].Value, 3)
}
