package fetcher

import (
	"context"
	"time"
)

// Backoff returns the wait before attempt i (0-indexed). Attempt 0 never
// waits.
type Backoff func(attempt int) time.Duration

// LinearBackoff waits 1+i seconds before retry attempt i.
func LinearBackoff(attempt int) time.Duration {
	return time.Duration(1+attempt) * time.Second
}

// Attempt runs op up to maxTries times, waiting backoff(i) before each
// retry. It stops early when op succeeds or the context is done; the wait
// itself is interruptible. The last error is returned after the budget is
// exhausted.
func Attempt(ctx context.Context, maxTries int, backoff Backoff, op func() error) error {
	var lastErr error
	for attempt := 0; attempt < maxTries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff(attempt)):
			}
		}

		if err := op(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
