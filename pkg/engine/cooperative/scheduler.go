package cooperative

import (
	"context"

	tfcontext "github.com/vnykmshr/taskflow/pkg/common/context"
)

// TaskResult is the recorded outcome of one task after a scheduler run.
type TaskResult[T any] struct {
	ID    string
	Value T
	Err   error
}

// Config holds optional scheduler callbacks.
type Config[T any] struct {
	// OnResume is called after every resume with the yielded or final value.
	OnResume func(id string, value T, completed bool)

	// OnTaskComplete is called once per task when it completes.
	OnTaskComplete func(result TaskResult[T])

	// OnPass is called after each full round-robin pass with the number of
	// tasks still alive.
	OnPass func(alive int)
}

// Scheduler drives a collection of AsyncTasks to completion with round-robin
// resumption on a single logical thread of control. No locking is needed:
// only one task body runs at any instant, and suspension happens solely at
// task-authored yield points.
type Scheduler[T any] struct {
	config Config[T]
	tasks  []*AsyncTask[T]
}

// NewScheduler creates an empty round-robin scheduler.
func NewScheduler[T any]() *Scheduler[T] {
	return NewSchedulerWithConfig(Config[T]{})
}

// NewSchedulerWithConfig creates a scheduler with callbacks.
func NewSchedulerWithConfig[T any](config Config[T]) *Scheduler[T] {
	return &Scheduler[T]{config: config}
}

// Add registers a task. Tasks are resumed in registration order within each
// pass, which makes the interleaving deterministic for fixed yields.
func (s *Scheduler[T]) Add(task *AsyncTask[T]) {
	s.tasks = append(s.tasks, task)
}

// Len returns the number of registered tasks.
func (s *Scheduler[T]) Len() int {
	return len(s.tasks)
}

// Alive returns the number of registered tasks not yet completed.
func (s *Scheduler[T]) Alive() int {
	alive := 0
	for _, t := range s.tasks {
		if !t.Completed() {
			alive++
		}
	}
	return alive
}

// Run resumes every alive task once per pass, repeating passes until all
// tasks are completed. A task failure is cached on that task and never stops
// the loop; only context cancellation aborts the run early.
func (s *Scheduler[T]) Run(ctx context.Context) error {
	for {
		alive := 0
		for _, t := range s.tasks {
			if t.Completed() {
				continue
			}
			alive++

			if err := s.resume(ctx, t); err != nil {
				return err
			}
		}

		if s.config.OnPass != nil {
			s.config.OnPass(s.Alive())
		}

		if alive == 0 {
			return nil
		}

		if tfcontext.IsCanceled(ctx) {
			return ctx.Err()
		}
	}
}

// resume performs one resumption, distinguishing task failures (recorded,
// not fatal) from scheduler aborts (context cancellation).
func (s *Scheduler[T]) resume(ctx context.Context, t *AsyncTask[T]) error {
	value, completed, err := t.Resume(ctx)
	if err != nil && !completed {
		// Not a task outcome: the wait itself was aborted.
		return err
	}

	if s.config.OnResume != nil {
		s.config.OnResume(t.ID(), value, completed)
	}
	if completed && s.config.OnTaskComplete != nil {
		s.config.OnTaskComplete(TaskResult[T]{ID: t.ID(), Value: value, Err: err})
	}

	return nil
}

// Results returns the task outcomes in registration order. Tasks that have
// not completed yet carry their zero value.
func (s *Scheduler[T]) Results() []TaskResult[T] {
	results := make([]TaskResult[T], 0, len(s.tasks))
	for _, t := range s.tasks {
		results = append(results, TaskResult[T]{
			ID:    t.ID(),
			Value: t.Result(),
			Err:   t.Err(),
		})
	}
	return results
}
