package jobs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/observability"
	"github.com/tokoledger/tokoledger/internal/sales"
	"github.com/tokoledger/tokoledger/internal/shared"
)

// SettlementOrphan is a PAID debt or receivable whose ledger counterpart row
// is missing. Records written before settlements became transactional can be
// in this state.
type SettlementOrphan struct {
	ID           int64
	Counterparty string
	Amount       float64
}

// ReconcileStore is the data access surface of the reconciliation sweep.
type ReconcileStore interface {
	PaidDebts(ctx context.Context) ([]SettlementOrphan, error)
	PaidReceivables(ctx context.Context) ([]SettlementOrphan, error)
	SettlementRefs(ctx context.Context) (map[uuid.UUID]bool, error)
	InsertRepairExpense(ctx context.Context, orphan SettlementOrphan) error
	InsertRepairSale(ctx context.Context, orphan SettlementOrphan) error
}

// Reconciler inserts the ledger rows that orphaned settlements are missing.
type Reconciler struct {
	store   ReconcileStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewReconciler builds Reconciler instance.
func NewReconciler(store ReconcileStore, metrics *observability.Metrics, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: store, metrics: metrics, logger: logger}
}

// Handle processes the settlement:reconcile task.
func (r *Reconciler) Handle(ctx context.Context, _ *asynq.Task) error {
	repairs, err := r.Sweep(ctx)
	if err != nil {
		r.metrics.ObserveJob(TaskSettlementReconcile, "failure")
		return err
	}
	r.metrics.ObserveJob(TaskSettlementReconcile, "success")
	if repairs > 0 {
		r.logger.Info("settlement sweep repaired orphans", slog.Int("repairs", repairs))
	}
	return nil
}

// Sweep finds every PAID debt without its settlement expense and every PAID
// receivable without its settlement sale, inserts the missing rows and
// returns the repair count.
func (r *Reconciler) Sweep(ctx context.Context) (int, error) {
	refs, err := r.store.SettlementRefs(ctx)
	if err != nil {
		return 0, err
	}

	repairs := 0

	debts, err := r.store.PaidDebts(ctx)
	if err != nil {
		return repairs, err
	}
	for _, d := range debts {
		if refs[shared.DebtSettlementRef(d.ID)] {
			continue
		}
		if err := r.store.InsertRepairExpense(ctx, d); err != nil {
			return repairs, err
		}
		repairs++
		r.metrics.ObserveRepair("debt_expense")
		r.logger.Warn("repaired settled debt without expense",
			slog.Int64("debt_id", d.ID),
			slog.Float64("amount", d.Amount))
	}

	receivables, err := r.store.PaidReceivables(ctx)
	if err != nil {
		return repairs, err
	}
	for _, rec := range receivables {
		if refs[shared.ReceivableSettlementRef(rec.ID)] {
			continue
		}
		if err := r.store.InsertRepairSale(ctx, rec); err != nil {
			return repairs, err
		}
		repairs++
		r.metrics.ObserveRepair("receivable_sale")
		r.logger.Warn("repaired settled receivable without sale",
			slog.Int64("receivable_id", rec.ID),
			slog.Float64("amount", rec.Amount))
	}

	return repairs, nil
}

// PGReconcileStore implements ReconcileStore against PostgreSQL.
type PGReconcileStore struct {
	pool *pgxpool.Pool
}

// NewPGReconcileStore constructs PGReconcileStore.
func NewPGReconcileStore(pool *pgxpool.Pool) *PGReconcileStore {
	return &PGReconcileStore{pool: pool}
}

// PaidDebts lists settled debts.
func (s *PGReconcileStore) PaidDebts(ctx context.Context) ([]SettlementOrphan, error) {
	return s.orphans(ctx, `SELECT id, counterparty, amount FROM debts WHERE status = 'PAID'`)
}

// PaidReceivables lists settled receivables.
func (s *PGReconcileStore) PaidReceivables(ctx context.Context) ([]SettlementOrphan, error) {
	return s.orphans(ctx, `SELECT id, customer, amount FROM receivables WHERE status = 'PAID'`)
}

func (s *PGReconcileStore) orphans(ctx context.Context, query string) ([]SettlementOrphan, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SettlementOrphan
	for rows.Next() {
		var o SettlementOrphan
		if err := rows.Scan(&o.ID, &o.Counterparty, &o.Amount); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// SettlementRefs collects every ref already present on an expense or sale.
func (s *PGReconcileStore) SettlementRefs(ctx context.Context) (map[uuid.UUID]bool, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT settlement_ref FROM expenses WHERE settlement_ref IS NOT NULL
		UNION
		SELECT receivable_ref FROM sales_transactions WHERE receivable_ref IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID]bool)
	for rows.Next() {
		var ref uuid.UUID
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		out[ref] = true
	}
	return out, rows.Err()
}

// InsertRepairExpense books the expense a settled debt should have produced.
func (s *PGReconcileStore) InsertRepairExpense(ctx context.Context, orphan SettlementOrphan) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO expenses (category, description, amount, settlement_ref, occurred_at)
		VALUES ($1, $2, $3, $4, NOW())`,
		expense.CategoryOther, "Debt settlement", orphan.Amount, shared.DebtSettlementRef(orphan.ID))
	return err
}

// InsertRepairSale books the cash-in a settled receivable should have produced.
func (s *PGReconcileStore) InsertRepairSale(ctx context.Context, orphan SettlementOrphan) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sales_transactions (product_id, quantity, unit_price, payment_method, note, receivable_ref, occurred_at)
		VALUES (NULL, 1, $1, $2, $3, $4, NOW())`,
		orphan.Amount, string(sales.PaymentCash), "Receivable settlement", shared.ReceivableSettlementRef(orphan.ID))
	return err
}
