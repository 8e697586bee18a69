package procurement

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/shared"
	"github.com/tokoledger/tokoledger/internal/stock"
)

// ErrSupplierNotFound indicates the purchase references a missing supplier.
var ErrSupplierNotFound = fmt.Errorf("supplier %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for material purchases.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListPurchases(ctx context.Context, from, to time.Time) ([]Purchase, error)
}

// IdempotencyGuard deduplicates resubmitted record requests.
type IdempotencyGuard interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// Service handles material purchase business logic.
type Service struct {
	repo RepositoryPort
	idem IdempotencyGuard
	unit string
}

// NewService builds Service instance. The idempotency guard may be nil.
func NewService(repo RepositoryPort, idem IdempotencyGuard) *Service {
	return &Service{repo: repo, idem: idem, unit: stock.DefaultUnit}
}

// RecordPurchase records a raw-material purchase. In one transaction it also
// adds the purchased quantity to stock, creating the stock row with the
// default unit when the material is new, and books a raw-material expense for
// the purchase total.
func (s *Service) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*Purchase, error) {
	if input.SupplierID == 0 {
		return nil, fmt.Errorf("%w: supplier required", shared.ErrValidation)
	}
	material := strings.TrimSpace(input.MaterialName)
	if material == "" {
		return nil, fmt.Errorf("%w: material name required", shared.ErrValidation)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", shared.ErrValidation)
	}
	if input.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price cannot be negative", shared.ErrValidation)
	}

	if s.idem != nil && input.IdempotencyKey != "" {
		if err := s.idem.CheckAndInsert(ctx, input.IdempotencyKey, "procurement"); err != nil {
			return nil, err
		}
	}

	var created *Purchase
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		supplierName, err := tx.SupplierName(ctx, input.SupplierID)
		if err != nil {
			return err
		}

		purchase, err := tx.InsertPurchase(ctx, purchaseRow{
			SupplierID:   input.SupplierID,
			MaterialName: material,
			Quantity:     input.Quantity,
			UnitPrice:    input.UnitPrice,
		})
		if err != nil {
			return err
		}
		purchase.SupplierName = supplierName

		if err := tx.UpsertStock(ctx, material, input.Quantity, s.unit); err != nil {
			return err
		}

		description := fmt.Sprintf("Purchase %s from %s", material, supplierName)
		if err := tx.InsertPurchaseExpense(ctx,
			expense.CategoryRawMaterial,
			description,
			purchase.Total,
			shared.PurchaseExpenseRef(purchase.ID),
		); err != nil {
			return err
		}

		created = purchase
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

// ListForDay returns purchases recorded on the given calendar day.
func (s *Service) ListForDay(ctx context.Context, day time.Time) ([]Purchase, error) {
	start := shared.StartOfDay(day)
	return s.repo.ListPurchases(ctx, start, start.AddDate(0, 0, 1))
}
