// Package cli implements the penman command-line interface.
//
// The CLI runs the penman HTTP API, translates text through the MyMemory
// relay, renders handwriting pages to PNG or PDF, and manages the local
// account session and translation cache. It is built on cobra and logs
// through charmbracelet/log.
//
// # Commands
//
//   - serve: Run the HTTP API
//   - translate: Translate text, optionally picking languages interactively
//   - render: Render text as handwriting (PNG or paginated PDF)
//   - styles, languages: List handwriting styles and language codes
//   - account: Register, log in and inspect the stored session
//   - cache: Manage the translation cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so that long-running commands can report
// progress.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamped with
// wall-clock time to the hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress measures one command, e.g. a translation or a render, and
// logs its result with the elapsed time: "Rendered 3 pages (412ms)".
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerCtxKey struct{}

// withLogger attaches l to ctx for commands and the relay to pick up.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// loggerFromContext returns the logger set by withLogger, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
