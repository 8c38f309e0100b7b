package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errTransient = errors.New("transient")

// recordSleep returns a SleepFunc that records waits without sleeping.
func recordSleep(waits *[]time.Duration) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errTransient.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errTransient) {
		t.Error("errors.Is should see through RetryableError")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestPolicySuccessFirstTry(t *testing.T) {
	var waits []time.Duration
	p := Policy{Attempts: 4, Delay: time.Second, Sleep: recordSleep(&waits)}

	calls := 0
	err := p.Do(context.Background(), func(int) error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}
	if len(waits) != 0 {
		t.Errorf("Should not wait: %v", waits)
	}
}

func TestPolicyNonRetryableStopsImmediately(t *testing.T) {
	var waits []time.Duration
	p := Policy{Attempts: 4, Delay: time.Second, Sleep: recordSleep(&waits)}

	calls := 0
	err := p.Do(context.Background(), func(int) error {
		calls++
		return errTransient
	})
	if err != errTransient {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}
}

func TestPolicyBackoffSchedule(t *testing.T) {
	var waits []time.Duration
	p := DefaultPolicy()
	p.Sleep = recordSleep(&waits)

	var attempts []int
	err := p.Do(context.Background(), func(attempt int) error {
		attempts = append(attempts, attempt)
		return Retryable(errTransient)
	})
	if !errors.Is(err, errTransient) {
		t.Errorf("Should return last error: %v", err)
	}

	if len(attempts) != 4 {
		t.Fatalf("attempts = %v, want 4 attempts", attempts)
	}
	for i, a := range attempts {
		if a != i+1 {
			t.Errorf("attempt[%d] = %d, want %d", i, a, i+1)
		}
	}

	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	if len(waits) != len(want) {
		t.Fatalf("waits = %v, want %v", waits, want)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait before retry %d = %v, want %v", i+1, waits[i], want[i])
		}
	}
}

func TestPolicyRecoversAfterRetry(t *testing.T) {
	var waits []time.Duration
	p := DefaultPolicy()
	p.Sleep = recordSleep(&waits)

	err := p.Do(context.Background(), func(attempt int) error {
		if attempt < 2 {
			return Retryable(errTransient)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if len(waits) != 1 || waits[0] != time.Second {
		t.Errorf("waits = %v, want [1s]", waits)
	}
}

func TestPolicyMinimumOneAttempt(t *testing.T) {
	calls := 0
	_ = Policy{Attempts: 0}.Do(context.Background(), func(int) error {
		calls++
		return Retryable(errTransient)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Policy{Attempts: 3, Delay: time.Hour}.Do(ctx, func(int) error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestSleep(t *testing.T) {
	if err := Sleep(context.Background(), time.Millisecond); err != nil {
		t.Errorf("Sleep() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); err != context.Canceled {
		t.Errorf("Sleep() on cancelled ctx = %v, want context.Canceled", err)
	}
}
