package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tokoledger/tokoledger/internal/shared"
)

// ListFilter bounds an expense listing to [From, To).
type ListFilter struct {
	From time.Time
	To   time.Time
}

// RepositoryPort defines data access methods for expenses.
type RepositoryPort interface {
	CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]Expense, error)
}

// Service handles expense business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateExpense validates and records a manual expense.
func (s *Service) CreateExpense(ctx context.Context, input ExpenseInput) (*Expense, error) {
	if strings.TrimSpace(input.Category) == "" {
		return nil, fmt.Errorf("%w: category required", shared.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	return s.repo.CreateExpense(ctx, input)
}

// ListForDay returns expenses recorded on the given calendar day.
func (s *Service) ListForDay(ctx context.Context, day time.Time) ([]Expense, error) {
	start := shared.StartOfDay(day)
	return s.repo.ListExpenses(ctx, ListFilter{From: start, To: start.AddDate(0, 0, 1)})
}
