// Package observability lets a binary watch penman's libraries without
// those libraries importing a metrics or tracing backend.
//
// The relay, the MyMemory client, the cache wrapper and the renderer emit
// events through four hook interfaces. Each defaults to [Noop]; a binary
// swaps in its own implementation once at startup:
//
//	observability.NewLogHooks(logger).Register()
//	defer observability.Reset()
//
// Library code fetches the current hooks at the call site:
//
//	observability.Translation().OnAttempt(ctx, "mymemory", attempt)
package observability

import (
	"context"
	"sync"
	"time"
)

// TranslationHooks observes the translation relay.
type TranslationHooks interface {
	// OnAttempt fires before each provider call; attempt starts at 1.
	OnAttempt(ctx context.Context, provider string, attempt int)

	// OnRetry fires after a transient failure, before sleeping wait.
	OnRetry(ctx context.Context, provider string, attempt int, wait time.Duration, err error)

	// OnComplete fires once per request with the final outcome.
	OnComplete(ctx context.Context, provider string, attempts int, cached bool, duration time.Duration, err error)
}

// CacheHooks observes translation cache lookups. keyType names the kind of
// entry, currently always "translation".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks observes outbound provider calls.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires for transport failures, including timeouts.
	OnError(ctx context.Context, method, host, path string, err error)
}

// RenderHooks observes the handwriting canvas and the PNG/PDF exporters.
type RenderHooks interface {
	OnRender(ctx context.Context, lines, width, height int, duration time.Duration)
	OnExport(ctx context.Context, format string, pages, size int)
}

// Noop implements every hook interface and discards all events. Embed it to
// implement only the events you care about.
type Noop struct{}

func (Noop) OnAttempt(context.Context, string, int)                                 {}
func (Noop) OnRetry(context.Context, string, int, time.Duration, error)             {}
func (Noop) OnComplete(context.Context, string, int, bool, time.Duration, error)    {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}
func (Noop) OnRender(context.Context, int, int, int, time.Duration)                 {}
func (Noop) OnExport(context.Context, string, int, int)                             {}

// slot holds one registered hook implementation.
type slot[T any] struct {
	mu sync.RWMutex
	v  T
}

func (s *slot[T]) load() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

func (s *slot[T]) store(v T) {
	s.mu.Lock()
	s.v = v
	s.mu.Unlock()
}

var (
	translationSlot = &slot[TranslationHooks]{v: Noop{}}
	cacheSlot       = &slot[CacheHooks]{v: Noop{}}
	httpSlot        = &slot[HTTPHooks]{v: Noop{}}
	renderSlot      = &slot[RenderHooks]{v: Noop{}}
)

// SetTranslationHooks installs h. A nil h is ignored.
func SetTranslationHooks(h TranslationHooks) {
	if h != nil {
		translationSlot.store(h)
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.store(h)
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.store(h)
	}
}

// SetRenderHooks installs h. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		renderSlot.store(h)
	}
}

func Translation() TranslationHooks { return translationSlot.load() }
func Cache() CacheHooks             { return cacheSlot.load() }
func HTTP() HTTPHooks               { return httpSlot.load() }
func Render() RenderHooks           { return renderSlot.load() }

// Reset puts [Noop] back in every slot.
func Reset() {
	translationSlot.store(Noop{})
	cacheSlot.store(Noop{})
	httpSlot.store(Noop{})
	renderSlot.store(Noop{})
}
