package supplier

import (
	"context"
	"fmt"
	"strings"

	"github.com/tokoledger/tokoledger/internal/shared"
)

// ErrSupplierNotFound indicates a missing supplier.
var ErrSupplierNotFound = fmt.Errorf("supplier %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for suppliers.
type RepositoryPort interface {
	CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error)
	GetSupplier(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

// Service handles supplier business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// CreateSupplier validates and stores a new supplier.
func (s *Service) CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name required", shared.ErrValidation)
	}
	return s.repo.CreateSupplier(ctx, input)
}

// GetSupplier returns one supplier.
func (s *Service) GetSupplier(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.GetSupplier(ctx, id)
}

// ListSuppliers returns all suppliers.
func (s *Service) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

// UpdateSupplier validates and updates an existing supplier.
func (s *Service) UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: supplier name required", shared.ErrValidation)
	}
	return s.repo.UpdateSupplier(ctx, id, input)
}

// DeleteSupplier removes a supplier.
func (s *Service) DeleteSupplier(ctx context.Context, id int64) error {
	return s.repo.DeleteSupplier(ctx, id)
}

// SuppliesMaterial reports whether the supplier's material list contains name.
func SuppliesMaterial(s *Supplier, name string) bool {
	for _, m := range strings.Split(s.Materials, ",") {
		if strings.EqualFold(strings.TrimSpace(m), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
