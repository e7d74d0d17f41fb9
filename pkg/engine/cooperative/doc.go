/*
Package cooperative provides suspendable tasks driven to completion by a
single-threaded scheduler.

An AsyncTask wraps a computation that may suspend itself at explicit yield
points. The scheduler resumes tasks one at a time; there is no preemption, no
time slicing and no cross-task locking, because only one task body ever runs
at any instant. This model suits workloads made of many small cooperative
steps whose interleaving should be deterministic.

Basic usage:

	t1 := cooperative.NewTask("t1", func(ctx context.Context, yield cooperative.YieldFunc[int]) (int, error) {
		yield(1) // suspension point
		yield(2)
		return 3, nil
	})

	sched := cooperative.NewScheduler[int]()
	sched.Add(t1)
	if err := sched.Run(ctx); err != nil {
		// context canceled mid-run
	}
	for _, r := range sched.Results() {
		// r.ID, r.Value, r.Err
	}

Resume semantics:

Resume runs the body to its next yield or to its return. Once a task
completes, its result is cached: further Resume calls return the identical
value without re-entering the body. A panic or error inside the body is
captured as the task's failure and marks it completed; the scheduler loop
continues with the remaining tasks.

Scheduling:

Scheduler.Run makes repeated round-robin passes over the task list, resuming
every alive task once per pass, until all complete. With a fixed task order
and fixed yield points the interleaving is fully deterministic.

PriorityScheduler buckets tasks into high, normal and low. Each step resumes
a task from the highest bucket that still has alive tasks, round-robining
within the bucket, so lower-priority tasks progress only after higher buckets
drain.

Cancellation is best-effort by construction: a canceled context stops the
scheduler from issuing further resumes, and the suspended bodies' resources
are reclaimed by the runtime.
*/
package cooperative
