package aio

import (
	"context"
	"time"

	gerrors "github.com/matzehuels/gremlin/pkg/errors"
)

// retryAttempts and retryDelay bound redials of a broken connection.
const (
	retryAttempts = 3
	retryDelay    = 100 * time.Millisecond
)

// retryWithBackoff retries fn with exponential backoff while it fails with an
// error for which retryable returns true. Other errors are returned at once.
func retryWithBackoff(ctx context.Context, retryable func(error) bool, fn func() error) error {
	delay := retryDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !retryable(err) {
			return err
		}

		if i < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// dialRetryable reports whether a dial failure is worth another attempt.
// Configuration and authentication failures never are.
func dialRetryable(err error) bool {
	return gerrors.IsRecoverable(err) || gerrors.Is(err, gerrors.ErrCodeTransport)
}
