// Package httputil provides HTTP utilities for outbound provider clients.
//
// # Retry
//
// [Policy] wraps a call with automatic retry for transient
// failures. Only errors wrapped with [RetryableError] are retried; the
// caller decides what is transient (for the translation relay that is a
// timeout or a 429 rate-limit response).
//
// The wait doubles after each failed attempt:
//
//	err := httputil.DefaultPolicy().Do(ctx, func(attempt int) error {
//	    return callProvider(ctx)
//	})
//
// # Configuration
//
// Default settings match the translation relay:
//
//   - Max retries: 3 (4 attempts in total)
//   - Base backoff: 1 second (1s, 2s, 4s)
//
// [Policy.Sleep] may be replaced to observe or skip the waits, which is
// how tests assert the backoff schedule without sleeping.
package httputil
