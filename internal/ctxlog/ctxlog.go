// Package ctxlog carries a slog.Logger through context.Context so that
// library code logs with whatever logger the host application configured.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to keep this context key collision-free.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, falling back to the process
// default logger when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
