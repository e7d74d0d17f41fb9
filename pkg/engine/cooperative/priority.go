package cooperative

import (
	"context"

	tfcontext "github.com/vnykmshr/taskflow/pkg/common/context"
)

// Priority orders tasks in a PriorityScheduler.
type Priority int

const (
	// PriorityHigh tasks are resumed before all others.
	PriorityHigh Priority = iota

	// PriorityNormal is the default bucket.
	PriorityNormal

	// PriorityLow tasks run only when no higher bucket has alive tasks.
	PriorityLow
)

// String returns a human-readable priority name.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// priorityCount is the number of fixed buckets.
const priorityCount = 3

// PriorityScheduler buckets tasks into {high, normal, low} and resumes, at
// each step, a task from the highest-priority bucket that still has alive
// tasks, round-robining within that bucket. It approximates priority
// scheduling atop the same single-threaded cooperative loop: lower buckets
// make progress only once every higher bucket has completed.
type PriorityScheduler[T any] struct {
	config  Config[T]
	buckets [priorityCount][]*AsyncTask[T]
	cursors [priorityCount]int
	order   []*AsyncTask[T]
}

// NewPriorityScheduler creates an empty priority scheduler.
func NewPriorityScheduler[T any]() *PriorityScheduler[T] {
	return NewPrioritySchedulerWithConfig(Config[T]{})
}

// NewPrioritySchedulerWithConfig creates a priority scheduler with callbacks.
func NewPrioritySchedulerWithConfig[T any](config Config[T]) *PriorityScheduler[T] {
	return &PriorityScheduler[T]{config: config}
}

// Add registers a task in the given priority bucket.
func (s *PriorityScheduler[T]) Add(task *AsyncTask[T], priority Priority) {
	if priority < PriorityHigh || priority > PriorityLow {
		priority = PriorityNormal
	}
	s.buckets[priority] = append(s.buckets[priority], task)
	s.order = append(s.order, task)
}

// Len returns the number of registered tasks.
func (s *PriorityScheduler[T]) Len() int {
	return len(s.order)
}

// Alive returns the number of registered tasks not yet completed.
func (s *PriorityScheduler[T]) Alive() int {
	alive := 0
	for _, t := range s.order {
		if !t.Completed() {
			alive++
		}
	}
	return alive
}

// Step resumes one task from the highest-priority bucket with alive tasks.
// It reports whether any task was resumed; false means everything completed.
func (s *PriorityScheduler[T]) Step(ctx context.Context) (bool, error) {
	for pri := 0; pri < priorityCount; pri++ {
		bucket := s.buckets[pri]
		if len(bucket) == 0 {
			continue
		}

		// Round-robin within the bucket, starting after the last task
		// this bucket resumed.
		for offset := 0; offset < len(bucket); offset++ {
			idx := (s.cursors[pri] + offset) % len(bucket)
			t := bucket[idx]
			if t.Completed() {
				continue
			}

			s.cursors[pri] = idx + 1

			value, completed, err := t.Resume(ctx)
			if err != nil && !completed {
				return true, err
			}

			if s.config.OnResume != nil {
				s.config.OnResume(t.ID(), value, completed)
			}
			if completed && s.config.OnTaskComplete != nil {
				s.config.OnTaskComplete(TaskResult[T]{ID: t.ID(), Value: value, Err: err})
			}

			return true, nil
		}
	}

	return false, nil
}

// Run steps the scheduler until every task has completed or the context is
// canceled. Task failures are cached on their tasks and never abort the run.
func (s *PriorityScheduler[T]) Run(ctx context.Context) error {
	for {
		resumed, err := s.Step(ctx)
		if err != nil {
			return err
		}
		if !resumed {
			return nil
		}

		if tfcontext.IsCanceled(ctx) {
			return ctx.Err()
		}
	}
}

// Results returns the task outcomes in registration order.
func (s *PriorityScheduler[T]) Results() []TaskResult[T] {
	results := make([]TaskResult[T], 0, len(s.order))
	for _, t := range s.order {
		results = append(results, TaskResult[T]{
			ID:    t.ID(),
			Value: t.Result(),
			Err:   t.Err(),
		})
	}
	return results
}
