package debt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokoledger/tokoledger/internal/platform/db"
)

// Repository persists debts in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the writes performed inside one settlement.
type TxRepository interface {
	MarkPaid(ctx context.Context, id int64) (*Debt, error)
	InsertSettlementExpense(ctx context.Context, category, description string, amount float64, ref uuid.UUID) error
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("debt repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// MarkPaid flips an unpaid debt to paid. The status guard keeps a concurrent
// second settle from matching any row.
func (t *txRepository) MarkPaid(ctx context.Context, id int64) (*Debt, error) {
	query := `
		UPDATE debts
		SET status = 'PAID', updated_at = NOW()
		WHERE id = $1 AND status = 'UNPAID'
		RETURNING id, counterparty, amount, borrowed_at, due_at, status, created_at, updated_at`

	var d Debt
	var status string
	err := t.tx.QueryRow(ctx, query, id).
		Scan(&d.ID, &d.Counterparty, &d.Amount, &d.BorrowedAt, &d.DueAt, &status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if checkErr := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM debts WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return nil, checkErr
		}
		if !exists {
			return nil, ErrDebtNotFound
		}
		return nil, ErrAlreadySettled
	}
	if err != nil {
		return nil, err
	}
	d.Status = Status(status)
	return &d, nil
}

// InsertSettlementExpense records the cash outflow of a settled debt.
func (t *txRepository) InsertSettlementExpense(ctx context.Context, category, description string, amount float64, ref uuid.UUID) error {
	query := `
		INSERT INTO expenses (category, description, amount, settlement_ref, occurred_at)
		VALUES ($1, $2, $3, $4, NOW())`

	_, err := t.tx.Exec(ctx, query, category, description, amount, ref)
	return err
}

// CreateDebt inserts a manually recorded debt.
func (r *Repository) CreateDebt(ctx context.Context, input DebtInput) (*Debt, error) {
	query := `
		INSERT INTO debts (counterparty, amount, borrowed_at, due_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'UNPAID', NOW(), NOW())
		RETURNING id, created_at, updated_at`

	var d Debt
	err := r.pool.QueryRow(ctx, query, input.Counterparty, input.Amount, input.BorrowedAt, input.DueAt).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}

	d.Counterparty = input.Counterparty
	d.Amount = input.Amount
	d.BorrowedAt = input.BorrowedAt
	d.DueAt = input.DueAt
	d.Status = StatusUnpaid
	return &d, nil
}

// ListDebts returns debts ordered by due date ascending, optionally filtered
// by status.
func (r *Repository) ListDebts(ctx context.Context, status Status) ([]Debt, error) {
	query := `
		SELECT id, counterparty, amount, borrowed_at, due_at, status, created_at, updated_at
		FROM debts
		WHERE ($1 = '' OR status = $1)
		ORDER BY due_at ASC`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Debt
	for rows.Next() {
		var d Debt
		var st string
		if err := rows.Scan(&d.ID, &d.Counterparty, &d.Amount, &d.BorrowedAt, &d.DueAt, &st, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Status = Status(st)
		out = append(out, d)
	}
	return out, rows.Err()
}
