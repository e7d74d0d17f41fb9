package cooperative_test

import (
	"context"
	"fmt"

	"github.com/vnykmshr/taskflow/pkg/engine/cooperative"
)

// Example demonstrates two tasks interleaving at their yield points.
func Example() {
	ctx := context.Background()

	mk := func(id string) *cooperative.AsyncTask[string] {
		return cooperative.NewTask(id, func(ctx context.Context, yield cooperative.YieldFunc[string]) (string, error) {
			yield(id + " step 1")
			yield(id + " step 2")
			return id + " done", nil
		})
	}

	sched := cooperative.NewSchedulerWithConfig(cooperative.Config[string]{
		OnResume: func(id string, value string, completed bool) {
			fmt.Println(value)
		},
	})
	sched.Add(mk("a"))
	sched.Add(mk("b"))

	sched.Run(ctx)

	// Output:
	// a step 1
	// b step 1
	// a step 2
	// b step 2
	// a done
	// b done
}

// Example_priority demonstrates priority buckets draining in order.
func Example_priority() {
	ctx := context.Background()

	mk := func(id string) *cooperative.AsyncTask[int] {
		return cooperative.NewTask(id, func(ctx context.Context, yield cooperative.YieldFunc[int]) (int, error) {
			fmt.Println(id)
			return 0, nil
		})
	}

	sched := cooperative.NewPriorityScheduler[int]()
	sched.Add(mk("background"), cooperative.PriorityLow)
	sched.Add(mk("urgent"), cooperative.PriorityHigh)
	sched.Add(mk("routine"), cooperative.PriorityNormal)

	sched.Run(ctx)

	// Output:
	// urgent
	// routine
	// background
}
