/*
Package engine groups the three task-execution engines and their shared
building blocks.

The engines are alternative strategies over the same "unit of work" idea — a
callable producing a value or an error — and never call each other. Pick one
per workload shape:

  - workerpool: true OS-thread parallelism over a shared queue; best for
    I/O-bound jobs needing bounded concurrency and failure isolation.
  - parallel: isolated units with no shared mutable state, communicating only
    by message passing; best for CPU-bound, share-nothing computation.
  - cooperative: a single logical thread resuming suspendable tasks at
    explicit yield points; best for many small steps needing deterministic
    interleaving.

Shared building blocks:

  - queue: the blocking FIFO task queue behind the worker pool
  - counter: mutex-guarded counters for progress tracking
  - periodic: time, interval and cron submission of tasks into a worker pool

None of the engines provide built-in timeout or cancellation primitives;
callers compose those by checking a context or deadline inside the work
itself, or by ceasing to resume a cooperative task.
*/
package engine
