package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (timeouts, rate-limit responses) with this type
// so that [Policy.Do] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is wrapped with [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default [SleepFunc]. It returns ctx.Err() if the context
// ends before d elapses.
func Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Policy describes an exponential backoff schedule.
type Policy struct {
	Attempts int           // total attempts, including the first; min 1
	Delay    time.Duration // wait before the first retry, doubled thereafter
	Sleep    SleepFunc     // defaults to [Sleep]
}

// DefaultPolicy returns one attempt plus three retries, waiting 1s, 2s and 4s.
func DefaultPolicy() Policy {
	return Policy{Attempts: 4, Delay: time.Second}
}

// Do executes fn until it succeeds, returns a non-retryable error, or the
// attempts are exhausted. fn receives the 1-based attempt number.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled
// while waiting.
func (p Policy) Do(ctx context.Context, fn func(attempt int) error) error {
	attempts := max(p.Attempts, 1)
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	delay := p.Delay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(i + 1); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
			delay *= 2
		}
	}
	return lastErr
}
