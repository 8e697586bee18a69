package jobs

import "github.com/hibiken/asynq"

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSettlementReconcile repairs settlements missing their ledger rows.
	TaskSettlementReconcile = "settlement:reconcile"
	// TaskIdempotencyCleanup prunes expired idempotency keys.
	TaskIdempotencyCleanup = "idempotency:cleanup"
)

// NewSettlementReconcileTask constructs the reconciliation sweep task.
func NewSettlementReconcileTask() *asynq.Task {
	return asynq.NewTask(TaskSettlementReconcile, nil)
}

// NewIdempotencyCleanupTask constructs the key cleanup task.
func NewIdempotencyCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskIdempotencyCleanup, nil)
}
