package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/observability"
	"github.com/tokoledger/tokoledger/internal/shared"
)

type memoryReconcileStore struct {
	debts          []SettlementOrphan
	receivables    []SettlementOrphan
	refs           map[uuid.UUID]bool
	repairExpenses []SettlementOrphan
	repairSales    []SettlementOrphan
}

func (s *memoryReconcileStore) PaidDebts(ctx context.Context) ([]SettlementOrphan, error) {
	return s.debts, nil
}

func (s *memoryReconcileStore) PaidReceivables(ctx context.Context) ([]SettlementOrphan, error) {
	return s.receivables, nil
}

func (s *memoryReconcileStore) SettlementRefs(ctx context.Context) (map[uuid.UUID]bool, error) {
	return s.refs, nil
}

func (s *memoryReconcileStore) InsertRepairExpense(ctx context.Context, orphan SettlementOrphan) error {
	s.repairExpenses = append(s.repairExpenses, orphan)
	return nil
}

func (s *memoryReconcileStore) InsertRepairSale(ctx context.Context, orphan SettlementOrphan) error {
	s.repairSales = append(s.repairSales, orphan)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweepRepairsOrphans(t *testing.T) {
	store := &memoryReconcileStore{
		debts: []SettlementOrphan{
			{ID: 1, Counterparty: "Koperasi", Amount: 250000},
			{ID: 2, Counterparty: "Bank", Amount: 500000},
		},
		receivables: []SettlementOrphan{
			{ID: 9, Counterparty: "Bu Sari", Amount: 30000},
		},
		refs: map[uuid.UUID]bool{
			// Debt 1 already has its expense; debt 2 and receivable 9 do not.
			shared.DebtSettlementRef(1): true,
		},
	}
	r := NewReconciler(store, observability.NewMetrics(), discardLogger())

	repairs, err := r.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, repairs)

	require.Len(t, store.repairExpenses, 1)
	require.Equal(t, int64(2), store.repairExpenses[0].ID)
	require.Len(t, store.repairSales, 1)
	require.Equal(t, int64(9), store.repairSales[0].ID)
}

func TestSweepWithNothingToRepair(t *testing.T) {
	store := &memoryReconcileStore{
		debts: []SettlementOrphan{{ID: 1, Amount: 1000}},
		refs: map[uuid.UUID]bool{
			shared.DebtSettlementRef(1): true,
		},
	}
	r := NewReconciler(store, observability.NewMetrics(), discardLogger())

	repairs, err := r.Sweep(context.Background())
	require.NoError(t, err)
	require.Zero(t, repairs)
	require.Empty(t, store.repairExpenses)
	require.Empty(t, store.repairSales)
}

type countingCleaner struct {
	calls     int
	olderThan time.Duration
}

func (c *countingCleaner) Cleanup(ctx context.Context, olderThan time.Duration) error {
	c.calls++
	c.olderThan = olderThan
	return nil
}

func TestIdempotencyCleanupHandle(t *testing.T) {
	cleaner := &countingCleaner{}
	job := NewIdempotencyCleanup(cleaner, 48*time.Hour, observability.NewMetrics(), discardLogger())

	require.NoError(t, job.Handle(context.Background(), NewIdempotencyCleanupTask()))
	require.Equal(t, 1, cleaner.calls)
	require.Equal(t, 48*time.Hour, cleaner.olderThan)
}
