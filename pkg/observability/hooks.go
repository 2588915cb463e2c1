package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/twotruths/pkg/domain"
)

// LogHooks logs batch lifecycle events. Retries are logged at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBatchStart: func(ctx context.Context, e *domain.BatchEvent) {
			logger.DebugContext(ctx, "batch_start",
				"batch_id", e.BatchID,
				"truths", e.Request.Truths,
				"lies", e.Request.Lies,
			)
		},
		OnBatchComplete: func(ctx context.Context, e *domain.BatchEvent) {
			logger.InfoContext(ctx, "batch_complete",
				"batch_id", e.BatchID,
				"duration", e.Duration,
				"retries", e.Retries,
			)
		},
		OnBatchFailed: func(ctx context.Context, e *domain.BatchEvent) {
			logger.WarnContext(ctx, "batch_failed",
				"batch_id", e.BatchID,
				"retries", e.Retries,
				"error", e.Err,
			)
		},
		OnRetry: func(ctx context.Context, e *domain.RetryEvent) {
			logger.DebugContext(ctx, "statement_retry",
				"batch_id", e.BatchID,
				"generator", e.Generator,
				"truth", e.Truth,
				"reason", e.Reason,
			)
		},
	}
}

// Chain merges hooks so each event reaches every set, in order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnBatchStart = chainBatch(out.OnBatchStart, h.OnBatchStart)
		out.OnBatchComplete = chainBatch(out.OnBatchComplete, h.OnBatchComplete)
		out.OnBatchFailed = chainBatch(out.OnBatchFailed, h.OnBatchFailed)
		out.OnRetry = chainRetry(out.OnRetry, h.OnRetry)
	}
	return out
}

func chainBatch(a, b func(context.Context, *domain.BatchEvent)) func(context.Context, *domain.BatchEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.BatchEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainRetry(a, b func(context.Context, *domain.RetryEvent)) func(context.Context, *domain.RetryEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *domain.RetryEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
