package parallel

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	tferrors "github.com/vnykmshr/taskflow/pkg/common/errors"
)

// Job is a message dispatched to a persistent unit.
type Job[T any] struct {
	// ID correlates the job with its result and orders gathered batches.
	ID string

	// Data is the unit's input, transferred by value across the isolation
	// boundary. Callers must not retain references reachable from Data.
	Data T
}

// UnitPool is a fixed set of long-lived isolated units. Each unit loops:
// receive a job message, compute, yield a result message back. Units hold no
// references into the caller's heap; all coordination happens at the blocking
// send/receive rendezvous points, so no locks guard the computation itself.
type UnitPool[T, R any] struct {
	fn      func(T) (R, error)
	jobs    chan Job[T]
	results chan UnitResult[R]
	done    chan struct{}
	wg      sync.WaitGroup
	closed  atomic.Bool
	size    int
}

// NewUnitPool spawns size persistent units computing fn.
// It panics if size is not positive.
func NewUnitPool[T, R any](size int, fn func(T) (R, error)) *UnitPool[T, R] {
	if size <= 0 {
		panic("unit pool size must be positive")
	}

	p := &UnitPool[T, R]{
		fn:      fn,
		jobs:    make(chan Job[T]),
		results: make(chan UnitResult[R], size),
		done:    make(chan struct{}),
		size:    size,
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.unit()
	}

	return p
}

// unit is the message loop of one isolated execution unit.
func (p *UnitPool[T, R]) unit() {
	defer p.wg.Done()

	for {
		select {
		case j := <-p.jobs:
			r := runUnit(-1, j.ID, j.Data, p.fn)
			select {
			case p.results <- r:
			case <-p.done:
				// Caller closed the pool without draining; the yield
				// rendezvous can no longer complete.
				return
			}
		case <-p.done:
			return
		}
	}
}

// Send dispatches a job to whichever unit receives it first, blocking until
// a unit is ready. It returns ErrClosed after Close and ctx.Err() if the
// context is canceled while waiting.
func (p *UnitPool[T, R]) Send(ctx context.Context, j Job[T]) error {
	if p.closed.Load() {
		return tferrors.ErrClosed
	}

	select {
	case p.jobs <- j:
		return nil
	case <-p.done:
		return tferrors.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive takes the next ready result from whichever unit finishes first.
// A unit's captured failure is delivered here, on its own result record.
func (p *UnitPool[T, R]) Receive(ctx context.Context) (UnitResult[R], error) {
	select {
	case r, ok := <-p.results:
		if !ok {
			return UnitResult[R]{}, tferrors.ErrClosed
		}
		return r, nil
	case <-ctx.Done():
		return UnitResult[R]{}, ctx.Err()
	}
}

// TryReceive takes a ready result without blocking.
func (p *UnitPool[T, R]) TryReceive() (UnitResult[R], bool) {
	select {
	case r, ok := <-p.results:
		if !ok {
			return UnitResult[R]{}, false
		}
		return r, true
	default:
		return UnitResult[R]{}, false
	}
}

// Gather collects n results as units finish and returns them re-sorted by
// job ID, so callers see a deterministic order regardless of which unit
// completed first.
func (p *UnitPool[T, R]) Gather(ctx context.Context, n int) ([]UnitResult[R], error) {
	results := make([]UnitResult[R], 0, n)
	for i := 0; i < n; i++ {
		r, err := p.Receive(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ID < results[j].ID
	})

	return results, nil
}

// Size returns the number of persistent units.
func (p *UnitPool[T, R]) Size() int {
	return p.size
}

// Close stops accepting jobs and waits for every unit to exit. Results
// already yielded remain receivable; the results channel closes once the
// last unit has terminated. Close is idempotent.
func (p *UnitPool[T, R]) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	close(p.done)
	go func() {
		p.wg.Wait()
		close(p.results)
	}()
}
