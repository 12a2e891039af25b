// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pixelate

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while timers and loaders are logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pixelate and its sub-packages.
// By default, pixelate produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by pixelate:
//   - [slog.LevelDebug]: renders, sequencer steps, surface refits
//   - [slog.LevelInfo]: lifecycle events (image loaded, controller ready, reveal done)
//   - [slog.LevelWarn]: skipped renders, layout retries, preload failures
//   - [slog.LevelError]: image load failures, layout timeouts
//
// Example:
//
//	pixelate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by pixelate.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
