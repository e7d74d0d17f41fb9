package parallel

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/taskflow/internal/testutil"
)

func TestProcessPreservesInputOrder(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	items := []int{1, 2, 3, 4, 5}

	// Random per-unit delays make completion order differ from input order.
	values, err := Process(ctx, items, func(n int) (int, error) {
		time.Sleep(time.Duration(rand.Intn(20)) * time.Millisecond)
		return n * n, nil
	})
	testutil.AssertNoError(t, err)

	want := []int{1, 4, 9, 16, 25}
	testutil.AssertEqual(t, len(values), len(want))
	for i := range want {
		testutil.AssertEqual(t, values[i], want[i])
	}
}

func TestProcessEmptyInput(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	values, err := Process(ctx, nil, func(n int) (int, error) {
		return n, nil
	})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(values), 0)
}

func TestProcessFailureIsolation(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	items := []int{1, 2, 3, 4}
	failure := errors.New("unit 2 exploded")

	values, err := Process(ctx, items, func(n int) (int, error) {
		if n == 3 {
			return 0, failure
		}
		return n * 10, nil
	})

	testutil.AssertError(t, err)
	if !errors.Is(err, failure) {
		t.Fatalf("joined error does not carry unit failure: %v", err)
	}

	// Surviving slots carry their values, the failed slot its zero value.
	testutil.AssertEqual(t, values[0], 10)
	testutil.AssertEqual(t, values[1], 20)
	testutil.AssertEqual(t, values[2], 0)
	testutil.AssertEqual(t, values[3], 40)
}

func TestProcessResultsPerUnitRecords(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	items := []string{"a", "bb", "ccc"}
	results := ProcessResults(ctx, Config{}, items, func(s string) (int, error) {
		if s == "bb" {
			return 0, errors.New("bad input")
		}
		return len(s), nil
	})

	testutil.AssertEqual(t, len(results), 3)
	for i, r := range results {
		testutil.AssertEqual(t, r.Index, i)
	}
	testutil.AssertNoError(t, results[0].Err)
	testutil.AssertEqual(t, results[0].Value, 1)
	testutil.AssertError(t, results[1].Err)
	testutil.AssertNoError(t, results[2].Err)
	testutil.AssertEqual(t, results[2].Value, 3)
}

func TestProcessPanicBecomesUnitError(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	items := []int{1, 2, 3}
	results := ProcessResults(ctx, Config{}, items, func(n int) (int, error) {
		if n == 2 {
			panic("unit blew up")
		}
		return n, nil
	})

	testutil.AssertNoError(t, results[0].Err)
	testutil.AssertError(t, results[1].Err)
	if !strings.Contains(results[1].Err.Error(), "unit panicked") {
		t.Errorf("panic not annotated: %v", results[1].Err)
	}
	testutil.AssertNoError(t, results[2].Err)
}

func TestProcessMaxConcurrent(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	const limit = 2
	var running, highWater atomic.Int32

	items := make([]int, 10)
	_, err := ProcessWithConfig(ctx, Config{MaxConcurrent: limit}, items, func(n int) (int, error) {
		cur := running.Add(1)
		for {
			hw := highWater.Load()
			if cur <= hw || highWater.CompareAndSwap(hw, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return n, nil
	})
	testutil.AssertNoError(t, err)

	if hw := highWater.Load(); hw > limit {
		t.Fatalf("observed %d concurrent units, limit %d", hw, limit)
	}
}

func TestProcessCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With a concurrency bound, canceled contexts surface as unit errors
	// for units still waiting on a slot.
	items := make([]int, 4)
	results := ProcessResults(ctx, Config{MaxConcurrent: 1}, items, func(n int) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return n, nil
	})

	testutil.AssertEqual(t, len(results), 4)
	canceled := 0
	for _, r := range results {
		if r.Err != nil && errors.Is(r.Err, context.Canceled) {
			canceled++
		}
	}
	if canceled == 0 {
		t.Fatal("expected at least one unit to observe cancellation")
	}
}

func TestUnitPoolSendReceive(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pool := NewUnitPool(2, func(n int) (int, error) {
		return n * 2, nil
	})
	defer pool.Close()

	testutil.AssertEqual(t, pool.Size(), 2)
	testutil.AssertNoError(t, pool.Send(ctx, Job[int]{ID: "j1", Data: 21}))

	r, err := pool.Receive(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, r.ID, "j1")
	testutil.AssertEqual(t, r.Value, 42)
}

func TestUnitPoolGatherSortsByID(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pool := NewUnitPool(4, func(n int) (int, error) {
		time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		return n * n, nil
	})
	defer pool.Close()

	const jobs = 8
	for i := 0; i < jobs; i++ {
		j := Job[int]{ID: fmt.Sprintf("job-%d", i), Data: i}
		testutil.AssertNoError(t, pool.Send(ctx, j))
	}

	results, err := pool.Gather(ctx, jobs)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(results), jobs)

	for i, r := range results {
		testutil.AssertEqual(t, r.ID, fmt.Sprintf("job-%d", i))
		testutil.AssertEqual(t, r.Value, i*i)
	}
}

func TestUnitPoolFailureStaysOnRecord(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pool := NewUnitPool(2, func(n int) (int, error) {
		if n < 0 {
			return 0, errors.New("negative input")
		}
		return n, nil
	})
	defer pool.Close()

	testutil.AssertNoError(t, pool.Send(ctx, Job[int]{ID: "bad", Data: -1}))
	testutil.AssertNoError(t, pool.Send(ctx, Job[int]{ID: "good", Data: 7}))

	results, err := pool.Gather(ctx, 2)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, results[0].ID, "bad")
	testutil.AssertError(t, results[0].Err)
	testutil.AssertEqual(t, results[1].ID, "good")
	testutil.AssertNoError(t, results[1].Err)
	testutil.AssertEqual(t, results[1].Value, 7)
}

func TestUnitPoolPanicIsolation(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pool := NewUnitPool(1, func(n int) (int, error) {
		if n == 0 {
			panic("zero division somewhere")
		}
		return 100 / n, nil
	})
	defer pool.Close()

	testutil.AssertNoError(t, pool.Send(ctx, Job[int]{ID: "a", Data: 0}))

	r, err := pool.Receive(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertError(t, r.Err)

	// The unit survives its own panic and keeps serving jobs.
	testutil.AssertNoError(t, pool.Send(ctx, Job[int]{ID: "b", Data: 4}))
	r, err = pool.Receive(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, r.Err)
	testutil.AssertEqual(t, r.Value, 25)
}

func TestUnitPoolClose(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pool := NewUnitPool(2, func(n int) (int, error) {
		return n, nil
	})

	pool.Close()
	pool.Close() // idempotent

	err := pool.Send(ctx, Job[int]{ID: "late", Data: 1})
	testutil.AssertError(t, err)
}

func TestUnitPoolTryReceive(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	pool := NewUnitPool(1, func(n int) (int, error) {
		return n + 1, nil
	})
	defer pool.Close()

	_, ok := pool.TryReceive()
	testutil.AssertEqual(t, ok, false)

	testutil.AssertNoError(t, pool.Send(ctx, Job[int]{ID: "x", Data: 1}))

	testutil.Eventually(t, testutil.TestTimeout, func() bool {
		r, ok := pool.TryReceive()
		return ok && r.Value == 2
	})
}
