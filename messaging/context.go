package messaging

import (
	"context"
	"log/slog"
)

type loggingContextKey struct{}

// WithLoggingContext attaches a correlation id reported on invitation log lines.
func WithLoggingContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, loggingContextKey{}, id)
}

// LoggingContext returns the correlation id attached to ctx.
func LoggingContext(ctx context.Context) string {
	id, _ := ctx.Value(loggingContextKey{}).(string)
	return id
}

func contextLogger(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id := LoggingContext(ctx); id != "" {
		return logger.With("logging_context", id)
	}
	return logger
}
