package procurement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokoledger/tokoledger/internal/platform/db"
)

// Repository persists material purchases in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the writes performed inside one purchase transaction.
type TxRepository interface {
	SupplierName(ctx context.Context, id int64) (string, error)
	InsertPurchase(ctx context.Context, row purchaseRow) (*Purchase, error)
	UpsertStock(ctx context.Context, materialName string, quantity float64, defaultUnit string) error
	InsertPurchaseExpense(ctx context.Context, category, description string, amount float64, ref uuid.UUID) error
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("procurement repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (t *txRepository) SupplierName(ctx context.Context, id int64) (string, error) {
	var name string
	err := t.tx.QueryRow(ctx, `SELECT name FROM suppliers WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrSupplierNotFound
	}
	if err != nil {
		return "", err
	}
	return name, nil
}

func (t *txRepository) InsertPurchase(ctx context.Context, row purchaseRow) (*Purchase, error) {
	query := `
		INSERT INTO material_purchases (supplier_id, material_name, quantity, unit_price, occurred_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, occurred_at, total`

	var p Purchase
	err := t.tx.QueryRow(ctx, query, row.SupplierID, row.MaterialName, row.Quantity, row.UnitPrice).
		Scan(&p.ID, &p.OccurredAt, &p.Total)
	if err != nil {
		return nil, err
	}

	p.SupplierID = row.SupplierID
	p.MaterialName = row.MaterialName
	p.Quantity = row.Quantity
	p.UnitPrice = row.UnitPrice
	return &p, nil
}

// UpsertStock increments the named material's quantity, creating the row with
// the default unit when the material has never been registered.
func (t *txRepository) UpsertStock(ctx context.Context, materialName string, quantity float64, defaultUnit string) error {
	query := `
		INSERT INTO stock_materials (name, quantity, unit, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (name) DO UPDATE
		SET quantity = stock_materials.quantity + EXCLUDED.quantity, updated_at = NOW()`

	_, err := t.tx.Exec(ctx, query, materialName, quantity, defaultUnit)
	return err
}

func (t *txRepository) InsertPurchaseExpense(ctx context.Context, category, description string, amount float64, ref uuid.UUID) error {
	query := `
		INSERT INTO expenses (category, description, amount, settlement_ref, occurred_at)
		VALUES ($1, $2, $3, $4, NOW())`

	_, err := t.tx.Exec(ctx, query, category, description, amount, ref)
	return err
}

// ListPurchases returns purchases in [from, to) newest first with supplier
// names joined in.
func (r *Repository) ListPurchases(ctx context.Context, from, to time.Time) ([]Purchase, error) {
	query := `
		SELECT m.id, m.occurred_at, m.supplier_id, s.name, m.material_name, m.quantity, m.unit_price, m.total
		FROM material_purchases m
		JOIN suppliers s ON s.id = m.supplier_id
		WHERE m.occurred_at >= $1 AND m.occurred_at < $2
		ORDER BY m.occurred_at DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.OccurredAt, &p.SupplierID, &p.SupplierName, &p.MaterialName, &p.Quantity, &p.UnitPrice, &p.Total); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
