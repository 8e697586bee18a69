package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/shared"
)

type memoryProductRepo struct {
	products map[int64]Product
	nextID   int64
}

func newMemoryProductRepo() *memoryProductRepo {
	return &memoryProductRepo{products: make(map[int64]Product)}
}

func (r *memoryProductRepo) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	r.nextID++
	now := time.Now()
	p := Product{
		ID:        r.nextID,
		Name:      input.Name,
		SellPrice: input.SellPrice,
		Stock:     input.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.products[p.ID] = p
	return &p, nil
}

func (r *memoryProductRepo) GetProduct(ctx context.Context, id int64) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (r *memoryProductRepo) ListProducts(ctx context.Context) ([]Product, error) {
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryProductRepo) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p.Name = input.Name
	p.SellPrice = input.SellPrice
	p.Stock = input.Stock
	p.UpdatedAt = time.Now()
	r.products[id] = p
	return &p, nil
}

func (r *memoryProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newMemoryProductRepo())

	_, err := svc.CreateProduct(context.Background(), ProductInput{Name: "  ", SellPrice: 1000})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateProduct(context.Background(), ProductInput{Name: "Pempek Kapal Selam", SellPrice: -1})
	require.ErrorIs(t, err, shared.ErrValidation)

	product, err := svc.CreateProduct(context.Background(), ProductInput{Name: "Pempek Kapal Selam", SellPrice: 15000, Stock: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), product.ID)
	require.Equal(t, 15000.0, product.SellPrice)
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	repo := newMemoryProductRepo()
	svc := NewService(repo)

	product, err := svc.CreateProduct(context.Background(), ProductInput{Name: "Pempek Lenjer", SellPrice: 10000, Stock: 5})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(context.Background(), product.ID, ProductInput{Name: "Pempek Lenjer", SellPrice: 12000, Stock: 8})
	require.NoError(t, err)
	require.Equal(t, 12000.0, updated.SellPrice)

	require.NoError(t, svc.DeleteProduct(context.Background(), product.ID))

	_, err = svc.GetProduct(context.Background(), product.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)

	err = svc.DeleteProduct(context.Background(), product.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}
