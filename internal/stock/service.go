package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/tokoledger/tokoledger/internal/shared"
)

// ErrMaterialNotFound indicates a missing stock row.
var ErrMaterialNotFound = fmt.Errorf("stock material %w", shared.ErrNotFound)

// RepositoryPort defines data access methods for stock materials.
type RepositoryPort interface {
	CreateMaterial(ctx context.Context, input MaterialInput) (*Material, error)
	GetMaterialByName(ctx context.Context, name string) (*Material, error)
	ListMaterials(ctx context.Context) ([]Material, error)
	UpdateMaterial(ctx context.Context, id int64, input MaterialInput) (*Material, error)
}

// Service handles stock business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

func validateMaterialInput(input MaterialInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: material name required", shared.ErrValidation)
	}
	if input.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", shared.ErrValidation)
	}
	if !ValidUnit(input.Unit) {
		return fmt.Errorf("%w: unknown unit %q", shared.ErrValidation, input.Unit)
	}
	return nil
}

// CreateMaterial validates and registers a stock row.
func (s *Service) CreateMaterial(ctx context.Context, input MaterialInput) (*Material, error) {
	if err := validateMaterialInput(input); err != nil {
		return nil, err
	}
	return s.repo.CreateMaterial(ctx, input)
}

// UpdateMaterial validates and edits a stock row.
func (s *Service) UpdateMaterial(ctx context.Context, id int64, input MaterialInput) (*Material, error) {
	if err := validateMaterialInput(input); err != nil {
		return nil, err
	}
	return s.repo.UpdateMaterial(ctx, id, input)
}

// ListMaterials returns all stock rows.
func (s *Service) ListMaterials(ctx context.Context) ([]Material, error) {
	return s.repo.ListMaterials(ctx)
}
