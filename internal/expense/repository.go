package expense

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for expenses.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateExpense inserts a manually recorded expense.
func (r *Repository) CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error) {
	query := `
		INSERT INTO expenses (category, description, amount, occurred_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, occurred_at`

	var e Expense
	err := r.pool.QueryRow(ctx, query, input.Category, input.Description, input.Amount).
		Scan(&e.ID, &e.OccurredAt)
	if err != nil {
		return nil, err
	}

	e.Category = input.Category
	e.Description = input.Description
	e.Amount = input.Amount
	return &e, nil
}

// ListExpenses returns expenses in [from, to) ordered newest first.
func (r *Repository) ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, error) {
	query := `
		SELECT id, occurred_at, category, description, amount, settlement_ref
		FROM expenses
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at DESC`

	rows, err := r.pool.Query(ctx, query, filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.Category, &e.Description, &e.Amount, &e.SettlementRef); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
