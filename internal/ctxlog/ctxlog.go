// Package ctxlog carries the command's slog.Logger through context.Context,
// so the job loader and runner log with the attributes of their caller.
package ctxlog

import (
	"context"
	"log/slog"
)

type loggerKey struct{}

var discard = slog.New(slog.DiscardHandler)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// With returns a copy of ctx whose logger adds args to every record, e.g.
// the name of the pattern a worker is evaluating.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// FromContext returns the logger carried by ctx. Without one, records are
// discarded: packages used as a library stay silent unless the caller opts in.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return discard
}
