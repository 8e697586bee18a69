package receivable

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tokoledger/tokoledger/internal/shared"
)

var (
	// ErrReceivableNotFound indicates a missing receivable.
	ErrReceivableNotFound = fmt.Errorf("receivable %w", shared.ErrNotFound)
	// ErrAlreadySettled indicates the receivable is already paid.
	ErrAlreadySettled = fmt.Errorf("receivable already settled: %w", shared.ErrInvalidState)
)

// RepositoryPort defines data access methods for receivables.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	CreateReceivable(ctx context.Context, input ReceivableInput) (*Receivable, error)
	ListReceivables(ctx context.Context, status Status) ([]Receivable, error)
}

// Service handles receivable business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateReceivable validates and records a receivable entered directly,
// outside the sales flow.
func (s *Service) CreateReceivable(ctx context.Context, input ReceivableInput) (*Receivable, error) {
	if strings.TrimSpace(input.Customer) == "" {
		return nil, fmt.Errorf("%w: customer name required", shared.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", shared.ErrValidation)
	}
	if input.DueAt.IsZero() {
		return nil, fmt.Errorf("%w: due date required", shared.ErrValidation)
	}
	if input.TransactedAt.IsZero() {
		input.TransactedAt = shared.StartOfDay(time.Now())
	}
	return s.repo.CreateReceivable(ctx, input)
}

// ListReceivables returns receivables ordered by due date, optionally
// filtered by status.
func (s *Service) ListReceivables(ctx context.Context, status Status) ([]Receivable, error) {
	return s.repo.ListReceivables(ctx, status)
}

// Settle flips an unpaid receivable to paid and records the cash inflow as a
// product-less cash sale, both in one transaction. Settling an already paid
// receivable fails without side effects.
func (s *Service) Settle(ctx context.Context, id int64) (*Receivable, error) {
	var settled *Receivable
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		rec, err := tx.MarkPaid(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.InsertSettlementSale(ctx, rec.Amount, "Receivable settlement", shared.ReceivableSettlementRef(rec.ID)); err != nil {
			return err
		}
		settled = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}
