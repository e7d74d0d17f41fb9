package queue

import (
	"context"

	"github.com/vnykmshr/taskflow/pkg/metrics"
)

// MetricsQueue wraps a Queue with Prometheus metrics collection.
type MetricsQueue[T any] struct {
	queue    *Queue[T]
	name     string
	registry *metrics.Registry
}

// NewWithMetrics creates a queue that reports push, pop and depth metrics
// under the given name.
func NewWithMetrics[T any](capacity int, name string, config metrics.Config) *MetricsQueue[T] {
	registry := metrics.DefaultRegistry
	if config.Registry != nil {
		registry = metrics.NewRegistry(config.Registry)
	}

	return &MetricsQueue[T]{
		queue:    New[T](capacity),
		name:     name,
		registry: registry,
	}
}

func (q *MetricsQueue[T]) updateDepth() {
	q.registry.QueueDepth.WithLabelValues(q.name).Set(float64(q.queue.Len()))
}

// Push adds an item, counting the operation and any blocking.
func (q *MetricsQueue[T]) Push(ctx context.Context, item T) error {
	before := q.queue.Stats().BlockedPushes

	err := q.queue.Push(ctx, item)
	if err == nil {
		q.registry.QueuePushes.WithLabelValues(q.name).Inc()
	}
	if q.queue.Stats().BlockedPushes > before {
		q.registry.QueueBlockedPushes.WithLabelValues(q.name).Inc()
	}
	q.updateDepth()

	return err
}

// TryPush adds an item without blocking.
func (q *MetricsQueue[T]) TryPush(item T) error {
	err := q.queue.TryPush(item)
	if err == nil {
		q.registry.QueuePushes.WithLabelValues(q.name).Inc()
		q.updateDepth()
	}
	return err
}

// Pop removes the oldest item, counting the operation.
func (q *MetricsQueue[T]) Pop(ctx context.Context) (T, bool, error) {
	item, ok, err := q.queue.Pop(ctx)
	if ok {
		q.registry.QueuePops.WithLabelValues(q.name).Inc()
		q.updateDepth()
	}
	return item, ok, err
}

// TryPop removes the oldest item without blocking.
func (q *MetricsQueue[T]) TryPop() (T, bool) {
	item, ok := q.queue.TryPop()
	if ok {
		q.registry.QueuePops.WithLabelValues(q.name).Inc()
		q.updateDepth()
	}
	return item, ok
}

// Close closes the underlying queue.
func (q *MetricsQueue[T]) Close() {
	q.queue.Close()
}

// IsClosed reports whether the queue has been closed.
func (q *MetricsQueue[T]) IsClosed() bool {
	return q.queue.IsClosed()
}

// Len returns the current number of buffered items.
func (q *MetricsQueue[T]) Len() int {
	return q.queue.Len()
}

// Cap returns the queue capacity.
func (q *MetricsQueue[T]) Cap() int {
	return q.queue.Cap()
}

// Stats returns the underlying queue statistics.
func (q *MetricsQueue[T]) Stats() Stats {
	return q.queue.Stats()
}
