package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned when a remote backend cannot be reached.
var ErrNetwork = errors.New("cache backend unreachable")

// RetryableError marks a failure that may succeed when tried again, such
// as a dropped connection to redis.
type RetryableError struct{ Err error }

// Retryable marks err as retryable. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int
	Delay    time.Duration // pause after the first failure, doubled each time
}

// DefaultBackoff is used by the remote backends.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 100 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked Retryable,
// runs out of attempts or ctx ends.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	delay := b.Delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff retries fn with DefaultBackoff.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
