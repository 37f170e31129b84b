package logging

import (
	"context"
	"log/slog"

	"github.com/aretw0/chainspec/pkg/domain"
)

// DebugHooks traces every node execution and retry at debug level.
func DebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepStart: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "Enter Node", "node", e.Description, "kind", e.Kind.String())
		},
		OnStepEnd: func(ctx context.Context, e *domain.StepEvent) {
			if e.Err != nil {
				logger.DebugContext(ctx, "Leave Node (Error)", "node", e.Description, "duration", e.Duration, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "Leave Node", "node", e.Description, "duration", e.Duration)
		},
		OnRetry: func(ctx context.Context, e *domain.RetryEvent) {
			logger.DebugContext(ctx, "Retry", "node", e.Description, "attempt", e.Attempt, "max", e.Max, "err", e.Err)
		},
	}
}
