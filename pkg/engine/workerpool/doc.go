/*
Package workerpool provides a fixed-size worker pool for concurrent task execution.

A worker pool manages a fixed number of worker goroutines that drain a shared
task queue. Each job runs inside a failure boundary: errors and panics are
captured on that job's result record and never terminate the worker or the
pool. The pool suits I/O-bound workloads where controlled concurrency and
per-job failure isolation matter.

Basic usage:

	pool := workerpool.New(4, 100) // 4 workers, queue size 100

	task := workerpool.TaskFunc(func(ctx context.Context) (any, error) {
		return fetch(ctx, url)
	})

	if err := pool.SubmitWithID("fetch-1", task); err != nil {
		log.Printf("Failed to submit: %v", err)
	}

	<-pool.Shutdown()
	for _, r := range workerpool.Drain(pool) {
		// r.TaskID, r.Value, r.Err
	}

Task Interface:

Tasks implement a single-method interface producing a value or an error:

	type Task interface {
		Execute(ctx context.Context) (any, error)
	}

The TaskFunc type adapts ordinary functions:

	task := workerpool.TaskFunc(func(ctx context.Context) (any, error) {
		return 42, nil
	})

Result Processing:

Results carry the submission ID so outcomes can be correlated:

	for result := range pool.Results() {
		if result.Err != nil {
			log.Printf("task %s failed: %v", result.TaskID, result.Err)
		}
	}

Results accumulate internally without blocking workers, so callers may poll
the channel incrementally or drain everything after Shutdown.

Guarantees:

  - every accepted task executes exactly once, by exactly one worker
  - a failing or panicking task never affects other tasks or the pool
  - Shutdown returns only after every accepted task has a recorded result
  - enqueue order into the shared queue is FIFO; completion order across
    workers is not specified

Timeouts and cancellation are composed by the caller: pass a context at
submission, set Config.TaskTimeout, or check a deadline inside the task body.

Monitoring:

NewWithMetrics and NewWithConfigAndMetrics wrap the pool with Prometheus
instrumentation (see pkg/metrics). Lifecycle callbacks in Config expose
worker and task events for custom logging or tracing.
*/
package workerpool
