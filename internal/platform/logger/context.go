package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{ name string }

var (
	loggerKey    = &contextKey{"logger"}
	requestIDKey = &contextKey{"request_id"}
)

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default() when there is none.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, nil)
}

// FromContextOrDefault returns the logger stored in ctx, falling back to
// fallback (or slog.Default() if fallback is nil). A request ID in ctx is
// attached as an attribute.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	var logger *slog.Logger
	if ctx != nil {
		logger, _ = ctx.Value(loggerKey).(*slog.Logger)
	}
	if logger == nil {
		logger = fallback
	}
	if logger == nil {
		logger = slog.Default()
	}
	if id := RequestID(ctx); id != "" {
		logger = logger.With("request_id", id)
	}
	return logger
}

// WithRequestID returns a copy of ctx carrying a request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the correlation ID stored in ctx, if any.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
