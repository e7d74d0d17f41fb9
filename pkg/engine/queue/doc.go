/*
Package queue provides a thread-safe blocking FIFO queue for pending work items.

The queue backs the worker pool's task distribution but is usable on its own
wherever a bounded producer/consumer handoff is needed.

Basic usage:

	q := queue.New[string](64)

	// Producer
	if err := q.Push(ctx, "job-1"); err != nil {
		// queue closed or context canceled
	}

	// Consumer
	for {
		item, ok, err := q.Pop(ctx)
		if !ok {
			break // closed and drained, or canceled (inspect err)
		}
		process(item, err)
	}

Shutdown semantics:

Close is the shutdown sentinel. It rejects further pushes and wakes every
blocked producer and consumer, but items already buffered are still delivered
in FIFO order. Pop reports ok=false only once the backlog is drained, so no
accepted item is ever dropped by closing the queue.

Ordering:

Enqueue order is preserved into the queue. With multiple concurrent consumers
the order in which consumers finish processing their items is not specified.
*/
package queue
