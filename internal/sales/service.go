package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/tokoledger/tokoledger/internal/shared"
)

// ErrProductNotFound indicates the sale references a missing product.
var ErrProductNotFound = fmt.Errorf("product %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for sales.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListSales(ctx context.Context, from, to time.Time) ([]Transaction, error)
}

// IdempotencyGuard deduplicates resubmitted record requests.
type IdempotencyGuard interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// Service handles sales business logic.
type Service struct {
	repo RepositoryPort
	idem IdempotencyGuard
}

// NewService builds Service instance. The idempotency guard may be nil.
func NewService(repo RepositoryPort, idem IdempotencyGuard) *Service {
	return &Service{repo: repo, idem: idem}
}

// RecordSale records a sales transaction. The unit price is captured from the
// product at call time. A sale on receivable with a customer name also creates
// the matching receivable, due in seven days, in the same transaction.
func (s *Service) RecordSale(ctx context.Context, input RecordSaleInput) (*Transaction, error) {
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", shared.ErrValidation)
	}
	if !ValidMethod(input.PaymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", shared.ErrValidation, input.PaymentMethod)
	}
	if input.ProductID == 0 {
		return nil, fmt.Errorf("%w: product required", shared.ErrValidation)
	}

	if s.idem != nil && input.IdempotencyKey != "" {
		if err := s.idem.CheckAndInsert(ctx, input.IdempotencyKey, "sales"); err != nil {
			return nil, err
		}
	}

	var created *Transaction
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		name, price, err := tx.GetProductPricing(ctx, input.ProductID)
		if err != nil {
			return err
		}

		productID := input.ProductID
		sale, err := tx.InsertSale(ctx, saleRow{
			ProductID:     &productID,
			Quantity:      input.Quantity,
			UnitPrice:     price,
			PaymentMethod: input.PaymentMethod,
			Note:          input.Note,
		})
		if err != nil {
			return err
		}
		sale.ProductName = name

		if input.PaymentMethod == PaymentReceivable && input.CustomerName != "" {
			today := shared.StartOfDay(sale.OccurredAt)
			if err := tx.InsertReceivable(ctx, receivableRow{
				Customer:     input.CustomerName,
				Amount:       input.Quantity * price,
				TransactedAt: today,
				DueAt:        today.AddDate(0, 0, receivableTermDays),
				SaleRef:      shared.SaleReceivableRef(sale.ID),
			}); err != nil {
				return err
			}
		}

		created = sale
		return nil
	})
	if err != nil {
		if s.idem != nil && input.IdempotencyKey != "" {
			_ = s.idem.Delete(ctx, input.IdempotencyKey)
		}
		return nil, err
	}
	return created, nil
}

// ListForDay returns sales recorded on the given calendar day.
func (s *Service) ListForDay(ctx context.Context, day time.Time) ([]Transaction, error) {
	start := shared.StartOfDay(day)
	return s.repo.ListSales(ctx, start, start.AddDate(0, 0, 1))
}
