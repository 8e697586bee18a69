package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tokoledger/tokoledger/internal/observability"
)

// KeyCleaner prunes entries older than the retention window.
type KeyCleaner interface {
	Cleanup(ctx context.Context, olderThan time.Duration) error
}

// IdempotencyCleanup removes idempotency keys past their retention.
type IdempotencyCleanup struct {
	store     KeyCleaner
	retention time.Duration
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewIdempotencyCleanup builds IdempotencyCleanup instance.
func NewIdempotencyCleanup(store KeyCleaner, retention time.Duration, metrics *observability.Metrics, logger *slog.Logger) *IdempotencyCleanup {
	return &IdempotencyCleanup{store: store, retention: retention, metrics: metrics, logger: logger}
}

// Handle processes the idempotency:cleanup task.
func (c *IdempotencyCleanup) Handle(ctx context.Context, _ *asynq.Task) error {
	if err := c.store.Cleanup(ctx, c.retention); err != nil {
		c.metrics.ObserveJob(TaskIdempotencyCleanup, "failure")
		return err
	}
	c.metrics.ObserveJob(TaskIdempotencyCleanup, "success")
	c.logger.Debug("idempotency keys pruned", slog.Duration("retention", c.retention))
	return nil
}
