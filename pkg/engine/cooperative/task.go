package cooperative

import (
	"context"
	"fmt"
)

// State describes where an AsyncTask is in its lifecycle.
type State int32

const (
	// StatePending means the task body has not started executing.
	StatePending State = iota

	// StateRunning means the task body currently owns control.
	StateRunning

	// StateSuspended means the body yielded and is waiting to be resumed.
	StateSuspended

	// StateCompleted means the body returned or failed; the result is cached.
	StateCompleted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// YieldFunc suspends the task body, handing the intermediate value back to
// whoever called Resume. It returns when the task is next resumed.
type YieldFunc[T any] func(T)

// Body is a suspendable computation. It may call yield any number of times;
// each call is a suspension point. The returned value (or error) completes
// the task.
type Body[T any] func(ctx context.Context, yield YieldFunc[T]) (T, error)

// handoff carries a value from the task body to Resume.
type handoff[T any] struct {
	value T
	final bool
	err   error
}

// AsyncTask wraps a suspendable computation with explicit completion state.
//
// The body runs on its own goroutine, but control is transferred through an
// unbuffered rendezvous: exactly one of {caller, body} executes at any
// instant, and the body only suspends at its own yield calls. AsyncTask is
// therefore not safe for concurrent Resume calls; it belongs to a single
// scheduler.
type AsyncTask[T any] struct {
	id   string
	body Body[T]

	state     State
	started   bool
	completed bool
	result    T
	err       error

	// pending is set when Resume abandoned a rendezvous (context canceled)
	// while the body already produced a handoff; the next Resume must
	// receive it without granting control again.
	pending bool

	resumeCh chan struct{}
	yieldCh  chan handoff[T]
}

// NewTask creates an AsyncTask in the Pending state. The body does not run
// until the first Resume.
func NewTask[T any](id string, body Body[T]) *AsyncTask[T] {
	return &AsyncTask[T]{
		id:       id,
		body:     body,
		state:    StatePending,
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan handoff[T]),
	}
}

// ID returns the task's identifier.
func (t *AsyncTask[T]) ID() string {
	return t.id
}

// State returns the task's current lifecycle state.
func (t *AsyncTask[T]) State() State {
	return t.state
}

// Completed reports whether the task has finished (successfully or not).
func (t *AsyncTask[T]) Completed() bool {
	return t.completed
}

// Result returns the cached final value. It is only meaningful once
// Completed reports true.
func (t *AsyncTask[T]) Result() T {
	return t.result
}

// Err returns the task's captured failure, if any.
func (t *AsyncTask[T]) Err() error {
	return t.err
}

// Resume drives the task to its next suspension point or to completion.
//
// If the task is already completed it returns the cached result immediately
// without re-entering the body. Otherwise the body runs until it yields
// (returning the intermediate value with completed=false) or finishes
// (caching and returning the final value with completed=true). A panic in
// the body is captured as the task's error and completes the task.
//
// A canceled context aborts the wait and returns ctx.Err(); the task itself
// is left resumable.
//
// The context passed to the first Resume is the one the body receives for
// its whole run; contexts on later Resume calls bound only the wait for the
// next suspension point and never reach the body.
func (t *AsyncTask[T]) Resume(ctx context.Context) (T, bool, error) {
	if t.completed {
		return t.result, true, t.err
	}

	if !t.started {
		t.started = true
		go t.runBody(ctx)
	} else if !t.pending {
		// Hand control back to the suspended body.
		select {
		case t.resumeCh <- struct{}{}:
		case <-ctx.Done():
			var zero T
			return zero, false, ctx.Err()
		}
	}
	t.pending = false
	t.state = StateRunning

	select {
	case h := <-t.yieldCh:
		if h.final {
			t.completed = true
			t.state = StateCompleted
			t.result = h.value
			t.err = h.err
			return t.result, true, t.err
		}
		t.state = StateSuspended
		return h.value, false, nil

	case <-ctx.Done():
		// The body may still deliver a handoff; pick it up next time.
		t.pending = true
		t.state = StateSuspended
		var zero T
		return zero, false, ctx.Err()
	}
}

// runBody executes the task body, translating yields, the final return and
// panics into handoff messages.
func (t *AsyncTask[T]) runBody(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			t.yieldCh <- handoff[T]{value: zero, final: true, err: fmt.Errorf("task %s panicked: %v", t.id, r)}
		}
	}()

	yield := func(v T) {
		t.yieldCh <- handoff[T]{value: v}
		<-t.resumeCh
	}

	value, err := t.body(ctx, yield)
	t.yieldCh <- handoff[T]{value: value, final: true, err: err}
}
