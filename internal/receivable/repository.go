package receivable

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokoledger/tokoledger/internal/platform/db"
)

// Repository persists receivables in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the writes performed inside one settlement.
type TxRepository interface {
	MarkPaid(ctx context.Context, id int64) (*Receivable, error)
	InsertSettlementSale(ctx context.Context, amount float64, note string, ref uuid.UUID) error
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("receivable repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

// MarkPaid flips an unpaid receivable to paid. The status guard in the WHERE
// clause is what makes concurrent settles of the same row safe: only one
// caller sees an affected row.
func (t *txRepository) MarkPaid(ctx context.Context, id int64) (*Receivable, error) {
	query := `
		UPDATE receivables
		SET status = 'PAID', updated_at = NOW()
		WHERE id = $1 AND status = 'UNPAID'
		RETURNING id, customer, amount, transacted_at, due_at, status, sale_ref, created_at, updated_at`

	var rec Receivable
	var status string
	err := t.tx.QueryRow(ctx, query, id).
		Scan(&rec.ID, &rec.Customer, &rec.Amount, &rec.TransactedAt, &rec.DueAt, &status, &rec.SaleRef, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if checkErr := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receivables WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return nil, checkErr
		}
		if !exists {
			return nil, ErrReceivableNotFound
		}
		return nil, ErrAlreadySettled
	}
	if err != nil {
		return nil, err
	}
	rec.Status = Status(status)
	return &rec, nil
}

// InsertSettlementSale records the cash inflow of a settled receivable as a
// product-less cash sale.
func (t *txRepository) InsertSettlementSale(ctx context.Context, amount float64, note string, ref uuid.UUID) error {
	query := `
		INSERT INTO sales_transactions (product_id, quantity, unit_price, payment_method, note, receivable_ref, occurred_at)
		VALUES (NULL, 1, $1, 'CASH', $2, $3, NOW())`

	_, err := t.tx.Exec(ctx, query, amount, note, ref)
	return err
}

// CreateReceivable inserts a manually recorded receivable.
func (r *Repository) CreateReceivable(ctx context.Context, input ReceivableInput) (*Receivable, error) {
	query := `
		INSERT INTO receivables (customer, amount, transacted_at, due_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'UNPAID', NOW(), NOW())
		RETURNING id, created_at, updated_at`

	var rec Receivable
	err := r.pool.QueryRow(ctx, query, input.Customer, input.Amount, input.TransactedAt, input.DueAt).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}

	rec.Customer = input.Customer
	rec.Amount = input.Amount
	rec.TransactedAt = input.TransactedAt
	rec.DueAt = input.DueAt
	rec.Status = StatusUnpaid
	return &rec, nil
}

// ListReceivables returns receivables ordered by due date ascending,
// optionally filtered by status.
func (r *Repository) ListReceivables(ctx context.Context, status Status) ([]Receivable, error) {
	query := `
		SELECT id, customer, amount, transacted_at, due_at, status, sale_ref, created_at, updated_at
		FROM receivables
		WHERE ($1 = '' OR status = $1)
		ORDER BY due_at ASC`

	rows, err := r.pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Receivable
	for rows.Next() {
		var rec Receivable
		var st string
		if err := rows.Scan(&rec.ID, &rec.Customer, &rec.Amount, &rec.TransactedAt, &rec.DueAt, &st, &rec.SaleRef, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Status = Status(st)
		out = append(out, rec)
	}
	return out, rows.Err()
}
