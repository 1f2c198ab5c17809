package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// FromContext returns the logger carried by ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return logger
		}
	}

	return slog.Default()
}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// EnsureContext stores fallback in ctx unless ctx already carries a logger.
// Background work uses it so records keep the component's attributes.
func EnsureContext(ctx context.Context, fallback *slog.Logger) context.Context {
	if _, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return ctx
	}

	return WithContext(ctx, fallback)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, slog.String("request_id", requestID))
}

func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return with(ctx, slog.String("correlation_id", correlationID))
}

// WithSyncCycleID tags every record of one pull cycle with a shared ID.
func WithSyncCycleID(ctx context.Context, cycleID string) context.Context {
	return with(ctx, slog.String("sync_cycle_id", cycleID))
}

func with(ctx context.Context, attrs ...any) context.Context {
	return WithContext(ctx, FromContext(ctx).With(attrs...))
}

// SetDefault installs logger as slog's default, which FromContext falls
// back to.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
