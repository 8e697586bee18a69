package expense

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/shared"
)

type memoryExpenseRepo struct {
	expenses []Expense
	nextID   int64
}

func (r *memoryExpenseRepo) CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error) {
	r.nextID++
	e := Expense{
		ID:          r.nextID,
		OccurredAt:  time.Now(),
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
	}
	r.expenses = append(r.expenses, e)
	return &e, nil
}

func (r *memoryExpenseRepo) ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, error) {
	var out []Expense
	for _, e := range r.expenses {
		if !e.OccurredAt.Before(filter.From) && e.OccurredAt.Before(filter.To) {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestCreateExpenseValidation(t *testing.T) {
	svc := NewService(&memoryExpenseRepo{})

	_, err := svc.CreateExpense(context.Background(), ExpenseInput{Category: "", Amount: 5000})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateExpense(context.Background(), ExpenseInput{Category: "Gas", Amount: 0})
	require.ErrorIs(t, err, shared.ErrValidation)

	e, err := svc.CreateExpense(context.Background(), ExpenseInput{Category: "Gas", Description: "LPG refill", Amount: 22000})
	require.NoError(t, err)
	require.Equal(t, 22000.0, e.Amount)
}

func TestListForDayBoundsWindow(t *testing.T) {
	repo := &memoryExpenseRepo{}
	svc := NewService(repo)

	_, err := svc.CreateExpense(context.Background(), ExpenseInput{Category: "Rent", Amount: 100000})
	require.NoError(t, err)

	// Entry recorded yesterday must not appear in today's listing.
	repo.expenses = append(repo.expenses, Expense{
		ID:         99,
		OccurredAt: time.Now().AddDate(0, 0, -1),
		Category:   "Water",
		Amount:     15000,
	})

	today, err := svc.ListForDay(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, today, 1)
	require.Equal(t, "Rent", today[0].Category)
}

func TestCategorySetIsFixed(t *testing.T) {
	require.Contains(t, Categories, CategoryRawMaterial)
	require.Contains(t, Categories, CategoryOther)
	require.Len(t, Categories, 9)
}
