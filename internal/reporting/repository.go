package reporting

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries behind dashboard and reports.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SalesTotal sums sales in [from, to).
func (r *Repository) SalesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM sales_transactions WHERE occurred_at >= $1 AND occurred_at < $2`,
		from, to).Scan(&total)
	return total, err
}

// ExpenseTotal sums expenses in [from, to).
func (r *Repository) ExpenseTotal(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE occurred_at >= $1 AND occurred_at < $2`,
		from, to).Scan(&total)
	return total, err
}

// LowStock lists stock rows below the threshold, emptiest first.
func (r *Repository) LowStock(ctx context.Context, threshold float64) ([]LowStockItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, quantity, unit FROM stock_materials WHERE quantity < $1 ORDER BY quantity ASC, name ASC`,
		threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LowStockItem
	for rows.Next() {
		var item LowStockItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// DebtsDueBefore lists unpaid debts due on or before the cutoff.
func (r *Repository) DebtsDueBefore(ctx context.Context, cutoff time.Time) ([]DueEntry, error) {
	return r.dueEntries(ctx,
		`SELECT id, counterparty, amount, due_at FROM debts WHERE status = 'UNPAID' AND due_at <= $1 ORDER BY due_at ASC`,
		cutoff)
}

// ReceivablesDueBefore lists unpaid receivables due on or before the cutoff.
func (r *Repository) ReceivablesDueBefore(ctx context.Context, cutoff time.Time) ([]DueEntry, error) {
	return r.dueEntries(ctx,
		`SELECT id, customer, amount, due_at FROM receivables WHERE status = 'UNPAID' AND due_at <= $1 ORDER BY due_at ASC`,
		cutoff)
}

func (r *Repository) dueEntries(ctx context.Context, query string, cutoff time.Time) ([]DueEntry, error) {
	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DueEntry
	for rows.Next() {
		var e DueEntry
		if err := rows.Scan(&e.ID, &e.Counterparty, &e.Amount, &e.DueAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// TrendTotals returns one point per calendar day in [from, to] inclusive,
// zero-filled for days without activity, in one grouped query.
func (r *Repository) TrendTotals(ctx context.Context, from, to time.Time) ([]TrendPoint, error) {
	query := `
		SELECT d::date, COALESCE(s.total, 0), COALESCE(e.total, 0)
		FROM generate_series($1::date, $2::date, interval '1 day') AS d
		LEFT JOIN (
			SELECT occurred_at::date AS day, SUM(total) AS total
			FROM sales_transactions
			WHERE occurred_at >= $1 AND occurred_at < $2::date + 1
			GROUP BY 1
		) s ON s.day = d::date
		LEFT JOIN (
			SELECT occurred_at::date AS day, SUM(amount) AS total
			FROM expenses
			WHERE occurred_at >= $1 AND occurred_at < $2::date + 1
			GROUP BY 1
		) e ON e.day = d::date
		ORDER BY d ASC`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var day time.Time
		var point TrendPoint
		if err := rows.Scan(&day, &point.SalesTotal, &point.ExpenseTotal); err != nil {
			return nil, err
		}
		point.Date = day.Format("2006-01-02")
		out = append(out, point)
	}
	return out, rows.Err()
}

// ExpenseByCategory sums expenses per category in [from, to).
func (r *Repository) ExpenseByCategory(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, SUM(amount) FROM expenses WHERE occurred_at >= $1 AND occurred_at < $2 GROUP BY category`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var category string
		var total float64
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		out[category] = total
	}
	return out, rows.Err()
}

// SalesByProduct sums units and revenue per product name in [from, to).
// Product-less settlement sales group under "Other".
func (r *Repository) SalesByProduct(ctx context.Context, from, to time.Time) (map[string]ProductSales, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(p.name, 'Other'), SUM(t.quantity), SUM(t.total)
		FROM sales_transactions t
		LEFT JOIN products p ON p.id = t.product_id
		WHERE t.occurred_at >= $1 AND t.occurred_at < $2
		GROUP BY 1`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]ProductSales)
	for rows.Next() {
		var name string
		var agg ProductSales
		if err := rows.Scan(&name, &agg.Units, &agg.Revenue); err != nil {
			return nil, err
		}
		out[name] = agg
	}
	return out, rows.Err()
}
