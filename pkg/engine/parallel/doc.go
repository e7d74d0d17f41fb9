/*
Package parallel provides isolation-based concurrency: independently scheduled
execution units with no shared mutable state.

Because units never share heap objects, data races between units are
structurally impossible. All cross-unit communication is copy-based message
passing at blocking rendezvous points; no locks are used or needed. This model
suits CPU-bound, parallelizable work with no shared state.

One-shot fan-out:

Process spawns one unit per item and preserves input order in its returned
collection by tagging each unit with its original index:

	squares, err := parallel.Process(ctx, []int{1, 2, 3, 4, 5},
		func(n int) (int, error) { return n * n, nil })
	// squares == []int{1, 4, 9, 16, 25}, whatever order units finished in

ProcessResults returns per-item records instead of collapsing failures, and
Config.MaxConcurrent bounds how many units run simultaneously.

Persistent unit pool:

UnitPool keeps a fixed number of long-lived units that loop receiving job
messages and yielding result messages:

	pool := parallel.NewUnitPool(4, expensiveFn)
	defer pool.Close()

	for i, item := range items {
		pool.Send(ctx, parallel.Job[Input]{ID: fmt.Sprintf("%03d", i), Data: item})
	}
	results, err := pool.Gather(ctx, len(items)) // sorted by job ID

Gather waits on whichever unit finishes first and re-sorts by ID before
returning, so callers observe a deterministic order.

Failure semantics:

An error or panic inside a unit's computation is captured and delivered only
when that unit's result is retrieved. It never corrupts or reschedules other
units.

Isolation contract:

Inputs are transferred by value. For the isolation guarantee to hold, callers
must not pass pointers to memory they keep mutating; transfer ownership or
copy instead.
*/
package parallel
