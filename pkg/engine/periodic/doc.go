/*
Package periodic schedules tasks for submission into a worker pool at a
point in time, on a fixed interval, or on a cron expression.

The scheduler owns no execution semantics. When an entry comes due, its task
is submitted through the pool's normal submission path and from there on is
indistinguishable from a directly submitted task: same failure isolation,
same result records, same shutdown guarantees.

Basic usage:

	pool := workerpool.New(4, 100)
	sched := periodic.NewWithConfig(periodic.Config{WorkerPool: pool})
	sched.Start()

	sched.ScheduleAfter("warmup", task, 5*time.Second)
	sched.ScheduleRepeating("heartbeat", task, 30*time.Second)
	sched.ScheduleCron("nightly", "0 0 2 * * *", task)

	<-sched.Stop()

Cron expressions use the six-field form with a seconds field, plus
descriptors such as "@hourly" and "@every 5s".

One-time entries are removed after firing; repeating and cron entries
reschedule themselves. Cancel removes an entry by ID at any time. Entries
that come due while the pool is shut down are dropped.

For transiently failing work, wrap the task in a BackoffTask to retry with
exponential backoff inside a single pool execution.
*/
package periodic
