/*
Package taskflow provides concurrent task-execution engines for Go applications.

Three engines cover the common workload shapes, all built around the same
"unit of work" idea: a callable that produces a value or an error.

Worker Pool (pkg/engine/workerpool):
  - fixed set of workers draining a shared queue
  - per-job failure isolation, graceful shutdown, result collection
  - best for I/O-bound workloads

Parallel Units (pkg/engine/parallel):
  - one isolated execution unit per item, communication by message passing only
  - order-preserving fan-out and a persistent unit pool
  - best for CPU-bound, share-nothing workloads

Cooperative Scheduler (pkg/engine/cooperative):
  - suspendable tasks resumed round-robin (or by priority) on one logical thread
  - suspension only at explicit yield points, deterministic interleaving
  - best for many small cooperative steps

Supporting packages:
  - pkg/engine/queue: blocking FIFO task queue
  - pkg/engine/counter: mutex-guarded counters for progress tracking
  - pkg/engine/periodic: time, interval and cron submission into a worker pool
  - pkg/metrics: Prometheus instrumentation

Example usage:

	import "github.com/vnykmshr/taskflow/pkg/engine/workerpool"

	pool := workerpool.New(4, 100)
	pool.Submit(workerpool.TaskFunc(func(ctx context.Context) (any, error) {
		return compute(), nil
	}))
	<-pool.Shutdown()
	for r := range pool.Results() {
		// r.TaskID, r.Value, r.Err
	}
*/
package taskflow
