package logger

import (
	"context"
	"log/slog"
)

// loggerContextKey is an unexported type used as the context key for the
// request-scoped logger. Using a dedicated type avoids collisions with keys
// defined in other packages.
type loggerContextKey struct{}

// WithLogger returns a copy of the parent context carrying the given logger.
// Middleware uses this to attach a request-scoped logger (with trace ID and
// request metadata) that handlers can retrieve further down the chain.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// FromContext retrieves the logger stored in the context, if any.
// The second return value reports whether a logger was present.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	log, ok := ctx.Value(loggerContextKey{}).(*slog.Logger)
	return log, ok
}

// FromContextOrDefault retrieves the logger stored in the context, falling
// back to slog.Default() when none was attached. Handlers should use this
// so logging never depends on middleware ordering.
func FromContextOrDefault(ctx context.Context) *slog.Logger {
	if log, ok := FromContext(ctx); ok && log != nil {
		return log
	}
	return slog.Default()
}
