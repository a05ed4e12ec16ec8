// Package logging builds the process logger and carries request loggers
// through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/UNO-SOFT/zlog/v2"
)

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a logger writing to outW. Format "json" and "text" use the slog
// handlers; anything else uses zlog's console handler, which falls back to
// JSON when outW is not a terminal.
func New(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	level := ParseLevel(levelStr)
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(formatStr) {
	case "json":
		handler = slog.NewJSONHandler(outW, handlerOpts)
	case "text":
		handler = slog.NewTextHandler(outW, handlerOpts)
	default:
		handler = zlog.MaybeConsoleHandler(level, outW)
	}
	return zlog.NewLogger(handler).SLog()
}

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from ctx, or slog.Default() if there is none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
