package stock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/shared"
)

type memoryStockRepo struct {
	materials map[int64]Material
	nextID    int64
}

func newMemoryStockRepo() *memoryStockRepo {
	return &memoryStockRepo{materials: make(map[int64]Material)}
}

func (r *memoryStockRepo) CreateMaterial(ctx context.Context, input MaterialInput) (*Material, error) {
	r.nextID++
	m := Material{ID: r.nextID, Name: input.Name, Quantity: input.Quantity, Unit: input.Unit, UpdatedAt: time.Now()}
	r.materials[m.ID] = m
	return &m, nil
}

func (r *memoryStockRepo) GetMaterialByName(ctx context.Context, name string) (*Material, error) {
	for _, m := range r.materials {
		if m.Name == name {
			return &m, nil
		}
	}
	return nil, ErrMaterialNotFound
}

func (r *memoryStockRepo) ListMaterials(ctx context.Context) ([]Material, error) {
	out := make([]Material, 0, len(r.materials))
	for _, m := range r.materials {
		out = append(out, m)
	}
	return out, nil
}

func (r *memoryStockRepo) UpdateMaterial(ctx context.Context, id int64, input MaterialInput) (*Material, error) {
	m, ok := r.materials[id]
	if !ok {
		return nil, ErrMaterialNotFound
	}
	m.Name = input.Name
	m.Quantity = input.Quantity
	m.Unit = input.Unit
	m.UpdatedAt = time.Now()
	r.materials[id] = m
	return &m, nil
}

func TestCreateMaterialValidation(t *testing.T) {
	svc := NewService(newMemoryStockRepo())

	_, err := svc.CreateMaterial(context.Background(), MaterialInput{Name: "", Quantity: 1, Unit: "kg"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateMaterial(context.Background(), MaterialInput{Name: "tenggiri", Quantity: 1, Unit: "barrel"})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateMaterial(context.Background(), MaterialInput{Name: "tenggiri", Quantity: -2, Unit: "kg"})
	require.ErrorIs(t, err, shared.ErrValidation)

	m, err := svc.CreateMaterial(context.Background(), MaterialInput{Name: "tenggiri", Quantity: 12, Unit: "kg"})
	require.NoError(t, err)
	require.Equal(t, StatusSafe, StatusOf(m.Quantity))
}

func TestUpdateMaterial(t *testing.T) {
	repo := newMemoryStockRepo()
	svc := NewService(repo)

	m, err := svc.CreateMaterial(context.Background(), MaterialInput{Name: "tapioca flour", Quantity: 4, Unit: "kg"})
	require.NoError(t, err)

	updated, err := svc.UpdateMaterial(context.Background(), m.ID, MaterialInput{Name: "tapioca flour", Quantity: 0, Unit: "kg"})
	require.NoError(t, err)
	require.Equal(t, StatusOut, StatusOf(updated.Quantity))

	_, err = svc.UpdateMaterial(context.Background(), 404, MaterialInput{Name: "salt", Quantity: 1, Unit: "pack"})
	require.ErrorIs(t, err, shared.ErrNotFound)
}
