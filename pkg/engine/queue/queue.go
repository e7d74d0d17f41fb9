package queue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tferrors "github.com/vnykmshr/taskflow/pkg/common/errors"
)

// Stats holds statistics about queue activity.
type Stats struct {
	// Pushes is the total number of completed push operations.
	Pushes int64

	// Pops is the total number of completed pop operations.
	Pops int64

	// BlockedPushes is the number of pushes that had to block for space.
	BlockedPushes int64

	// BlockedPops is the number of pops that had to block for an item.
	BlockedPops int64

	// LastPushTime is the timestamp of the last push operation.
	LastPushTime time.Time

	// LastPopTime is the timestamp of the last pop operation.
	LastPopTime time.Time
}

// Queue is a thread-safe blocking FIFO queue of pending work items.
//
// Closing the queue acts as the shutdown sentinel for consumers: blocked
// producers and consumers are woken, new pushes are rejected, and Pop keeps
// returning buffered items until the backlog is drained, after which it
// reports ok=false with ErrClosed. Ordering is FIFO per queue; with multiple
// concurrent consumers only the dequeue order is deterministic, not the
// order in which consumers finish processing.
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	buffer []T
	head   int
	tail   int
	count  int
	closed int32

	stats   Stats
	statsMu sync.RWMutex
}

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 100

// New creates a queue with the given buffer capacity.
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	q := &Queue[T]{
		buffer: make([]T, capacity),
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)

	return q
}

// Push enqueues an item, blocking while the queue is full.
// It returns ErrClosed if the queue has been closed and ctx.Err() if the
// context is canceled while waiting.
func (q *Queue[T]) Push(ctx context.Context, item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count >= len(q.buffer) && !q.IsClosed() {
		q.updateStats(func(s *Stats) { s.BlockedPushes++ })

		// A cond has no channel to select on, so cancellation must wake
		// blocked waiters itself for the loop to observe ctx.Done.
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			q.notFull.Broadcast()
		})
		defer stop()

		for q.count >= len(q.buffer) && !q.IsClosed() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			q.notFull.Wait()
		}
	}

	if q.IsClosed() {
		return tferrors.ErrClosed
	}

	q.enqueueLocked(item)
	q.updateStats(func(s *Stats) {
		s.Pushes++
		s.LastPushTime = time.Now()
	})
	q.notEmpty.Signal()

	return nil
}

// TryPush enqueues an item without blocking.
// It returns ErrCapacityExceeded when the queue is full and ErrClosed when
// the queue has been closed.
func (q *Queue[T]) TryPush(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.IsClosed() {
		return tferrors.ErrClosed
	}

	if q.count >= len(q.buffer) {
		return tferrors.ErrCapacityExceeded
	}

	q.enqueueLocked(item)
	q.updateStats(func(s *Stats) {
		s.Pushes++
		s.LastPushTime = time.Now()
	})
	q.notEmpty.Signal()

	return nil
}

// Pop dequeues the oldest item, blocking while the queue is empty.
// After Close, buffered items are still delivered in order; once the backlog
// is drained Pop returns ok=false with ErrClosed. A canceled context returns
// ok=false with ctx.Err().
func (q *Queue[T]) Pop(ctx context.Context) (T, bool, error) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 && !q.IsClosed() {
		q.updateStats(func(s *Stats) { s.BlockedPops++ })

		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			q.notEmpty.Broadcast()
		})
		defer stop()

		for q.count == 0 && !q.IsClosed() {
			select {
			case <-ctx.Done():
				return zero, false, ctx.Err()
			default:
			}

			q.notEmpty.Wait()
		}
	}

	if q.count == 0 {
		// Closed and fully drained: the sentinel condition.
		return zero, false, tferrors.ErrClosed
	}

	item := q.dequeueLocked()
	q.updateStats(func(s *Stats) {
		s.Pops++
		s.LastPopTime = time.Now()
	})
	q.notFull.Signal()

	return item, true, nil
}

// TryPop dequeues the oldest item without blocking.
// The second return value reports whether an item was available.
func (q *Queue[T]) TryPop() (T, bool) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return zero, false
	}

	item := q.dequeueLocked()
	q.updateStats(func(s *Stats) {
		s.Pops++
		s.LastPopTime = time.Now()
	})
	q.notFull.Signal()

	return item, true
}

// Close closes the queue for pushing and wakes all blocked operations.
// Buffered items remain poppable until drained. Close is idempotent.
func (q *Queue[T]) Close() {
	if !atomic.CompareAndSwapInt32(&q.closed, 0, 1) {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// IsClosed returns true if the queue has been closed.
func (q *Queue[T]) IsClosed() bool {
	return atomic.LoadInt32(&q.closed) != 0
}

// Len returns the current number of buffered items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the buffer capacity.
func (q *Queue[T]) Cap() int {
	return len(q.buffer)
}

// Stats returns a snapshot of queue statistics.
func (q *Queue[T]) Stats() Stats {
	q.statsMu.RLock()
	defer q.statsMu.RUnlock()
	return q.stats
}

// enqueueLocked adds an item to the ring buffer (must hold lock).
func (q *Queue[T]) enqueueLocked(item T) {
	q.buffer[q.tail] = item
	q.tail = (q.tail + 1) % len(q.buffer)
	q.count++
}

// dequeueLocked removes the oldest item from the ring buffer (must hold lock).
func (q *Queue[T]) dequeueLocked() T {
	item := q.buffer[q.head]
	var zero T
	q.buffer[q.head] = zero // Clear reference
	q.head = (q.head + 1) % len(q.buffer)
	q.count--
	return item
}

// updateStats safely updates statistics.
func (q *Queue[T]) updateStats(updater func(*Stats)) {
	q.statsMu.Lock()
	defer q.statsMu.Unlock()
	updater(&q.stats)
}
