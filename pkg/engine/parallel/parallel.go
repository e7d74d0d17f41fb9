package parallel

import (
	"context"
	"errors"
	"fmt"
)

// UnitResult is the recorded outcome of one isolated unit's computation.
type UnitResult[R any] struct {
	// Index is the input position for one-shot fan-out results.
	Index int

	// ID identifies the job for unit-pool results.
	ID string

	// Value is the computed value, zero on failure.
	Value R

	// Err is the unit's captured failure, if any. A unit failure is
	// delivered only through its own result; sibling units are unaffected.
	Err error
}

// Config holds options for one-shot fan-out processing.
type Config struct {
	// MaxConcurrent bounds the number of units running at the same time.
	// Zero or negative means one unit per item with no bound.
	MaxConcurrent int
}

// Process spawns one isolated unit per item, computes fn(item) in each, and
// returns the values in input order regardless of completion order. Units
// share no mutable state: each receives its item by value and communicates
// its outcome through a single rendezvous message.
//
// The returned error joins all unit failures; slots whose unit failed hold
// the zero value. A nil error means every unit succeeded.
func Process[T, R any](ctx context.Context, items []T, fn func(T) (R, error)) ([]R, error) {
	return ProcessWithConfig(ctx, Config{}, items, fn)
}

// ProcessWithConfig is Process with an explicit configuration.
func ProcessWithConfig[T, R any](ctx context.Context, cfg Config, items []T, fn func(T) (R, error)) ([]R, error) {
	results := ProcessResults(ctx, cfg, items, fn)

	values := make([]R, len(results))
	var errs []error
	for _, r := range results {
		values[r.Index] = r.Value
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("unit %d: %w", r.Index, r.Err))
		}
	}

	return values, errors.Join(errs...)
}

// ProcessResults spawns one isolated unit per item and returns the full
// result records in input order. Unlike Process it never collapses failures:
// each record carries its own value or error.
func ProcessResults[T, R any](ctx context.Context, cfg Config, items []T, fn func(T) (R, error)) []UnitResult[R] {
	if len(items) == 0 {
		return nil
	}

	// One rendezvous channel gathers all units; the buffer lets a unit
	// terminate without waiting for the caller.
	done := make(chan UnitResult[R], len(items))

	var sem chan struct{}
	if cfg.MaxConcurrent > 0 {
		sem = make(chan struct{}, cfg.MaxConcurrent)
	}

	for i, item := range items {
		go func(idx int, input T) {
			if sem != nil {
				select {
				case sem <- struct{}{}:
					defer func() { <-sem }()
				case <-ctx.Done():
					var zero R
					done <- UnitResult[R]{Index: idx, Value: zero, Err: ctx.Err()}
					return
				}
			}

			done <- runUnit(idx, "", input, fn)
		}(i, item)
	}

	// Gather all units; tag order is restored by index below.
	results := make([]UnitResult[R], len(items))
	for range items {
		r := <-done
		results[r.Index] = r
	}

	return results
}

// runUnit executes one unit's computation inside its failure boundary.
// A panic inside fn becomes that unit's error and corrupts nothing else.
func runUnit[T, R any](idx int, id string, input T, fn func(T) (R, error)) (result UnitResult[R]) {
	result = UnitResult[R]{Index: idx, ID: id}

	defer func() {
		if r := recover(); r != nil {
			var zero R
			result.Value = zero
			result.Err = fmt.Errorf("unit panicked: %v", r)
		}
	}()

	result.Value, result.Err = fn(input)
	return result
}
