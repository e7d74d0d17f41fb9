package periodic

import (
	"context"
	"time"

	"github.com/vnykmshr/taskflow/pkg/engine/workerpool"
)

// BackoffTask wraps a task with exponential-backoff retry logic. It is handy
// for repeating entries whose work may fail transiently.
type BackoffTask struct {
	Task         workerpool.Task
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// Execute implements workerpool.Task with exponential backoff.
func (bt BackoffTask) Execute(ctx context.Context) (any, error) {
	var lastErr error
	delay := bt.InitialDelay

	for attempt := 0; attempt <= bt.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		value, err := bt.Task.Execute(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		// Double delay for next attempt
		delay *= 2
		if delay > bt.MaxDelay {
			delay = bt.MaxDelay
		}
	}

	return nil, lastErr
}
