package workerpool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	tfcontext "github.com/vnykmshr/taskflow/pkg/common/context"
	tferrors "github.com/vnykmshr/taskflow/pkg/common/errors"
)

// Submit adds a task to the pool for execution under an auto-assigned ID.
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), "", task)
}

// SubmitWithID adds a task under a caller-chosen ID.
func (p *workerPool) SubmitWithID(id string, task Task) error {
	return p.SubmitWithContext(context.Background(), id, task)
}

// SubmitWithTimeout submits a task with a timeout for queuing.
func (p *workerPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	ctx, cancel := tfcontext.WithTimeoutOrCancel(context.Background(), timeout)
	defer cancel()
	return p.SubmitWithContext(ctx, "", task)
}

// SubmitWithContext adds a task to the pool for execution with the given context.
// The context applies to queuing and is passed on to the task's Execute method.
// If the pool has a TaskTimeout configured, the effective execution timeout is
// the minimum of the context deadline and TaskTimeout.
func (p *workerPool) SubmitWithContext(ctx context.Context, id string, task Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if id == "" {
		id = fmt.Sprintf("task-%d", p.seq.Add(1))
	}

	p.mu.RLock()
	isShutdown := p.isShutdown
	p.mu.RUnlock()

	if isShutdown {
		return fmt.Errorf("cannot submit task: worker pool has been shut down")
	}

	// Check if context is already canceled before attempting to queue
	// This ensures deterministic behavior for pre-canceled contexts
	select {
	case <-ctx.Done():
		return fmt.Errorf("cannot submit task: context canceled: %w", ctx.Err())
	default:
	}

	j := job{
		id:        id,
		task:      task,
		ctx:       ctx,
		submitted: time.Now(),
	}

	if err := p.taskQueue.Push(ctx, j); err != nil {
		if errors.Is(err, tferrors.ErrClosed) {
			return fmt.Errorf("cannot submit task: worker pool has been shut down")
		}
		return fmt.Errorf("cannot submit task: context canceled: %w", err)
	}

	p.totalSubmitted.Inc()
	return nil
}

// Results returns the channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.shutdownOnce.Do(func() {
		p.mu.Lock()
		p.isShutdown = true
		p.mu.Unlock()

		// Closing the queue is the shutdown sentinel: workers keep draining
		// the backlog and exit once Pop reports the queue closed and empty.
		p.taskQueue.Close()

		go func() {
			p.workerWg.Wait()
			close(p.workerResults)
			close(p.done)
		}()
	})

	return p.done
}

// ShutdownWithTimeout shuts down the pool, abandoning execution of still-queued
// jobs once the timeout elapses. Abandoned jobs are recorded as canceled
// results so no submission goes unaccounted for.
func (p *workerPool) ShutdownWithTimeout(timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	graceful := p.Shutdown()

	go func() {
		defer close(done)
		select {
		case <-graceful:
		case <-time.After(timeout):
			p.aborted.Store(true)
			<-graceful
		}
	}()

	return done
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return p.taskQueue.Len()
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(p.activeWorkers.Load())
}

// TotalSubmitted returns the total number of tasks accepted by the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return p.totalSubmitted.Value()
}

// TotalCompleted returns the total number of tasks with a recorded result.
func (p *workerPool) TotalCompleted() int64 {
	return p.totalCompleted.Value()
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	if w.pool.config.OnWorkerStart != nil {
		w.pool.config.OnWorkerStart(w.id)
	}
	defer func() {
		if w.pool.config.OnWorkerStop != nil {
			w.pool.config.OnWorkerStop(w.id)
		}
	}()

	for {
		j, ok, _ := w.pool.taskQueue.Pop(context.Background())
		if !ok {
			// Queue closed and drained: shutdown sentinel received.
			return
		}

		if w.pool.aborted.Load() {
			// Forced shutdown: record the job as canceled without executing it.
			w.recordResult(Result{
				TaskID:   j.id,
				Err:      fmt.Errorf("task abandoned during shutdown: %w", context.Canceled),
				WorkerID: w.id,
			})
			continue
		}

		w.executeJob(j)
	}
}

// recordResult counts and delivers a result record.
func (w *worker) recordResult(result Result) {
	w.pool.totalCompleted.Inc()
	if w.pool.config.OnTaskComplete != nil {
		w.pool.config.OnTaskComplete(w.id, result)
	}
	w.pool.workerResults <- result
}

// executeJob executes a single job inside the worker failure boundary.
// Errors and panics are captured on the job's result record; they never
// terminate the worker or the pool.
func (w *worker) executeJob(j job) {
	if w.pool.config.OnTaskStart != nil {
		w.pool.config.OnTaskStart(w.id, j.task)
	}

	w.pool.activeWorkers.Add(1)
	start := time.Now()

	var value any
	var err error

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
			value = nil
			if w.pool.config.PanicHandler != nil {
				w.pool.config.PanicHandler(j.task, r)
			}
		}

		w.pool.activeWorkers.Add(-1)
		w.recordResult(Result{
			TaskID:   j.id,
			Value:    value,
			Err:      err,
			Duration: time.Since(start),
			WorkerID: w.id,
		})
	}()

	// Start with the caller-provided context
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	// Apply TaskTimeout if configured
	// The effective timeout is the minimum of the context deadline and TaskTimeout
	if w.pool.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = tfcontext.WithTimeoutOrCancel(ctx, w.pool.config.TaskTimeout)
		defer cancel()
	}

	value, err = j.task.Execute(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && tfcontext.IsTimedOut(ctx) {
		err = fmt.Errorf("task timed out: %w", err)
	}
}

// Drain reads results until the results channel closes and returns them.
// It is intended to be called after Shutdown.
func Drain(p Pool) []Result {
	var results []Result
	for r := range p.Results() {
		results = append(results, r)
	}
	return results
}

// CollectResults reads exactly n results from the pool, blocking until they
// arrive or the results channel closes early.
func CollectResults(p Pool, n int) []Result {
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		r, ok := <-p.Results()
		if !ok {
			break
		}
		results = append(results, r)
	}
	return results
}
