package application

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidAttempts = errors.New("attempts must be at least 1")

// Retry runs op until it succeeds or attempts are exhausted. It returns the
// number of attempts made. Context cancellation stops retrying immediately.
func Retry(ctx context.Context, attempts int, op func(ctx context.Context, attempt int) error) (int, error) {
	if attempts < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidAttempts, attempts)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return attempt - 1, err
		}

		lastErr = op(ctx, attempt)
		if lastErr == nil {
			return attempt, nil
		}
		if ctx.Err() != nil {
			return attempt, lastErr
		}
	}

	return attempts, fmt.Errorf("gave up after %d attempts: %w", attempts, lastErr)
}
