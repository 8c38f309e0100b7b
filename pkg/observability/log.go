package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, except failed
// translations and HTTP errors which are logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for every hook kind.
func (h *LogHooks) Register() {
	SetTranslationHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetRenderHooks(h)
}

func (h *LogHooks) OnAttempt(_ context.Context, provider string, attempt int) {
	h.logger.Debug("translation attempt", "provider", provider, "attempt", attempt)
}

func (h *LogHooks) OnRetry(_ context.Context, provider string, attempt int, wait time.Duration, err error) {
	h.logger.Debug("translation retry", "provider", provider, "attempt", attempt, "wait", wait, "err", err)
}

func (h *LogHooks) OnComplete(_ context.Context, provider string, attempts int, cached bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("translation failed", "provider", provider, "attempts", attempts, "duration", d, "err", err)
		return
	}
	h.logger.Debug("translation done", "provider", provider, "attempts", attempts, "cached", cached, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

func (h *LogHooks) OnRender(_ context.Context, lines, width, height int, d time.Duration) {
	h.logger.Debug("rendered", "lines", lines, "width", width, "height", height, "duration", d)
}

func (h *LogHooks) OnExport(_ context.Context, format string, pages, size int) {
	h.logger.Debug("exported", "format", format, "pages", pages, "bytes", size)
}
