package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestDefaultsAreNoop(t *testing.T) {
	Reset()

	for name, h := range map[string]any{
		"translation": Translation(),
		"cache":       Cache(),
		"http":        HTTP(),
		"render":      Render(),
	} {
		if _, ok := h.(Noop); !ok {
			t.Errorf("%s hooks = %T, want Noop", name, h)
		}
	}
}

// countingHooks records relay events and ignores the rest.
type countingHooks struct {
	Noop
	attempts, retries int
	lastErr           error
}

func (h *countingHooks) OnAttempt(context.Context, string, int) { h.attempts++ }

func (h *countingHooks) OnRetry(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.retries++
	h.lastErr = err
}

func TestSetAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &countingHooks{}
	SetTranslationHooks(h)
	SetTranslationHooks(nil)
	SetCacheHooks(nil)

	ctx := context.Background()
	timeout := errors.New("timeout")
	Translation().OnAttempt(ctx, "mymemory", 1)
	Translation().OnRetry(ctx, "mymemory", 1, time.Second, timeout)
	Translation().OnAttempt(ctx, "mymemory", 2)

	if h.attempts != 2 || h.retries != 1 || h.lastErr != timeout {
		t.Errorf("got attempts=%d retries=%d err=%v", h.attempts, h.retries, h.lastErr)
	}
	if _, ok := Cache().(Noop); !ok {
		t.Error("SetCacheHooks(nil) replaced the default")
	}

	Reset()
	if Translation() == TranslationHooks(h) {
		t.Error("Reset kept custom translation hooks")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	NewLogHooks(logger).Register()

	ctx := context.Background()
	Translation().OnRetry(ctx, "mymemory", 1, time.Second, nil)
	Translation().OnComplete(ctx, "mymemory", 4, false, 7*time.Second, errors.New("rate limited"))
	Cache().OnCacheHit(ctx, "translation")
	HTTP().OnError(ctx, "GET", "api.mymemory.translated.net", "/get", nil)
	Render().OnRender(ctx, 3, 1400, 200, time.Millisecond)
	Render().OnExport(ctx, "pdf", 2, 4096)

	out := buf.String()
	for _, want := range []string{"translation retry", "translation failed", "cache hit", "http error", "rendered", "exported"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	NewLogHooks(log.New(&buf)).Register()

	Cache().OnCacheMiss(context.Background(), "translation")
	if buf.Len() != 0 {
		t.Errorf("cache events should log at debug only, got %q", buf.String())
	}
}
