package counter

import (
	"sync"
	"testing"

	"github.com/vnykmshr/taskflow/internal/testutil"
)

func TestCounterBasics(t *testing.T) {
	var c Counter

	testutil.AssertEqual(t, c.Value(), int64(0))
	testutil.AssertEqual(t, c.Inc(), int64(1))
	testutil.AssertEqual(t, c.Add(5), int64(6))
	testutil.AssertEqual(t, c.Value(), int64(6))

	c.Reset()
	testutil.AssertEqual(t, c.Value(), int64(0))
}

func TestCounterConcurrentIncrements(t *testing.T) {
	const goroutines = 50
	const increments = 200

	var c Counter
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()

	testutil.AssertEqual(t, c.Value(), int64(goroutines*increments))
}

func TestSet(t *testing.T) {
	s := NewSet()

	s.Inc("completed")
	s.Inc("completed")
	s.Add("failed", 3)

	testutil.AssertEqual(t, s.Get("completed"), int64(2))
	testutil.AssertEqual(t, s.Get("failed"), int64(3))
	testutil.AssertEqual(t, s.Get("missing"), int64(0))
}

func TestSetConcurrent(t *testing.T) {
	const goroutines = 20
	const increments = 100

	s := NewSet()
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				s.Inc("shared")
			}
		}()
	}
	wg.Wait()

	snapshot := s.Snapshot()
	testutil.AssertEqual(t, snapshot["shared"], int64(goroutines*increments))
}

func TestSetSnapshotIsolation(t *testing.T) {
	s := NewSet()
	s.Inc("a")

	snapshot := s.Snapshot()
	snapshot["a"] = 99

	testutil.AssertEqual(t, s.Get("a"), int64(1))
}
