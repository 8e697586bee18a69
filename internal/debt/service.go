package debt

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/shared"
)

var (
	// ErrDebtNotFound indicates a missing debt.
	ErrDebtNotFound = fmt.Errorf("debt %w", shared.ErrNotFound)
	// ErrAlreadySettled indicates the debt is already paid.
	ErrAlreadySettled = fmt.Errorf("debt already settled: %w", shared.ErrInvalidState)
)

// RepositoryPort defines data access methods for debts.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	CreateDebt(ctx context.Context, input DebtInput) (*Debt, error)
	ListDebts(ctx context.Context, status Status) ([]Debt, error)
}

// Service handles debt business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateDebt validates and records a debt.
func (s *Service) CreateDebt(ctx context.Context, input DebtInput) (*Debt, error) {
	if strings.TrimSpace(input.Counterparty) == "" {
		return nil, fmt.Errorf("%w: counterparty name required", shared.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	if input.DueAt.IsZero() {
		return nil, fmt.Errorf("%w: due date required", shared.ErrValidation)
	}
	if input.BorrowedAt.IsZero() {
		input.BorrowedAt = shared.StartOfDay(time.Now())
	}
	return s.repo.CreateDebt(ctx, input)
}

// ListDebts returns debts ordered by due date, optionally filtered by status.
func (s *Service) ListDebts(ctx context.Context, status Status) ([]Debt, error) {
	return s.repo.ListDebts(ctx, status)
}

// Settle flips an unpaid debt to paid and records the cash outflow as an
// expense, both in one transaction. Settling an already paid debt fails
// without side effects.
func (s *Service) Settle(ctx context.Context, id int64) (*Debt, error) {
	var settled *Debt
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		d, err := tx.MarkPaid(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.InsertSettlementExpense(ctx, expense.CategoryOther, "Debt settlement", d.Amount, shared.DebtSettlementRef(d.ID)); err != nil {
			return err
		}
		settled = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}
