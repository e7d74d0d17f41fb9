package parallel

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/taskflow/internal/testutil"
	"github.com/vnykmshr/taskflow/pkg/metrics"
)

func TestProcessResultsWithMetrics(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	cfg := metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	}

	items := []int{1, 2, 3}
	results := ProcessResultsWithMetrics(ctx, Config{}, "test-proc", cfg, items, func(n int) (int, error) {
		if n == 2 {
			return 0, errors.New("failed unit")
		}
		return n * 2, nil
	})

	testutil.AssertEqual(t, len(results), 3)
	testutil.AssertNoError(t, results[0].Err)
	testutil.AssertEqual(t, results[0].Value, 2)
	testutil.AssertError(t, results[1].Err)
	testutil.AssertNoError(t, results[2].Err)
	testutil.AssertEqual(t, results[2].Value, 6)
}
