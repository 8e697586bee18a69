package sales

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokoledger/tokoledger/internal/platform/db"
)

// Repository persists sales data in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the writes performed inside one sale transaction.
type TxRepository interface {
	GetProductPricing(ctx context.Context, productID int64) (name string, sellPrice float64, err error)
	InsertSale(ctx context.Context, row saleRow) (*Transaction, error)
	InsertReceivable(ctx context.Context, row receivableRow) error
}

type txRepository struct {
	tx pgx.Tx
}

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	if r == nil {
		return errors.New("sales repository not initialised")
	}
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

func (t *txRepository) GetProductPricing(ctx context.Context, productID int64) (string, float64, error) {
	var name string
	var price float64
	err := t.tx.QueryRow(ctx, `SELECT name, sell_price FROM products WHERE id = $1`, productID).
		Scan(&name, &price)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", 0, ErrProductNotFound
	}
	if err != nil {
		return "", 0, err
	}
	return name, price, nil
}

func (t *txRepository) InsertSale(ctx context.Context, row saleRow) (*Transaction, error) {
	query := `
		INSERT INTO sales_transactions (product_id, quantity, unit_price, payment_method, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, occurred_at, total`

	var tx Transaction
	err := t.tx.QueryRow(ctx, query, row.ProductID, row.Quantity, row.UnitPrice, string(row.PaymentMethod), row.Note).
		Scan(&tx.ID, &tx.OccurredAt, &tx.Total)
	if err != nil {
		return nil, err
	}

	tx.ProductID = row.ProductID
	tx.Quantity = row.Quantity
	tx.UnitPrice = row.UnitPrice
	tx.PaymentMethod = row.PaymentMethod
	tx.Note = row.Note
	return &tx, nil
}

func (t *txRepository) InsertReceivable(ctx context.Context, row receivableRow) error {
	query := `
		INSERT INTO receivables (customer, amount, transacted_at, due_at, status, sale_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'UNPAID', $5, NOW(), NOW())`

	_, err := t.tx.Exec(ctx, query, row.Customer, row.Amount, row.TransactedAt, row.DueAt, row.SaleRef)
	return err
}

// ListSales returns sales in [from, to) newest first, with the product name
// joined in when the product still exists.
func (r *Repository) ListSales(ctx context.Context, from, to time.Time) ([]Transaction, error) {
	query := `
		SELECT s.id, s.occurred_at, s.product_id, COALESCE(p.name, ''),
			s.quantity, s.unit_price, s.total, s.payment_method, s.note, s.receivable_ref
		FROM sales_transactions s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.occurred_at >= $1 AND s.occurred_at < $2
		ORDER BY s.occurred_at DESC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var tx Transaction
		var method string
		if err := rows.Scan(&tx.ID, &tx.OccurredAt, &tx.ProductID, &tx.ProductName,
			&tx.Quantity, &tx.UnitPrice, &tx.Total, &method, &tx.Note, &tx.ReceivableRef); err != nil {
			return nil, err
		}
		tx.PaymentMethod = PaymentMethod(method)
		out = append(out, tx)
	}
	return out, rows.Err()
}
