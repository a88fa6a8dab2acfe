package adapter

import (
	"context"
	"fmt"
	"time"
)

// DefaultBackoff is the delay before the first retry. It doubles per retry.
const DefaultBackoff = 500 * time.Millisecond

// RetryPolicy controls how Retry repeats a failing publish.
type RetryPolicy struct {
	// Retries is the number of attempts after the first.
	Retries int
	// Backoff is the delay before the first retry (default DefaultBackoff).
	Backoff time.Duration
	// Permanent reports errors that must not be retried. May be nil.
	Permanent func(error) bool
}

// Retry calls attempt until it succeeds, the retries are exhausted, a
// permanent error is returned, or ctx is done. Errors are prefixed with name.
func Retry(ctx context.Context, name string, p RetryPolicy, attempt func(ctx context.Context) error) error {
	backoff := p.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	var lastErr error
	// attempts = 1 initial + retries
	attempts := 1 + p.Retries

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: context canceled: %w", name, err)
		}

		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: context canceled during backoff: %w", name, ctx.Err())
			case <-time.After(backoff << uint(i-1)):
			}
		}

		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Permanent != nil && p.Permanent(lastErr) {
			return fmt.Errorf("%s: non-retriable error: %w", name, lastErr)
		}
	}

	return fmt.Errorf("%s: failed after %d attempts: %w", name, attempts, lastErr)
}
