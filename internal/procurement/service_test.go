package procurement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/shared"
	"github.com/tokoledger/tokoledger/internal/stock"
)

type stockEntry struct {
	quantity float64
	unit     string
}

type bookedExpense struct {
	category string
	amount   float64
	ref      uuid.UUID
}

type memoryPurchaseRepo struct {
	suppliers map[int64]string
	purchases []Purchase
	stock     map[string]stockEntry
	expenses  []bookedExpense
	nextID    int64
}

func newMemoryPurchaseRepo() *memoryPurchaseRepo {
	return &memoryPurchaseRepo{
		suppliers: map[int64]string{1: "CV Maju Jaya"},
		stock:     make(map[string]stockEntry),
	}
}

func (r *memoryPurchaseRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryPurchaseTx{repo: r})
}

func (r *memoryPurchaseRepo) ListPurchases(ctx context.Context, from, to time.Time) ([]Purchase, error) {
	var out []Purchase
	for _, p := range r.purchases {
		if !p.OccurredAt.Before(from) && p.OccurredAt.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memoryPurchaseTx struct {
	repo *memoryPurchaseRepo
}

func (t *memoryPurchaseTx) SupplierName(ctx context.Context, id int64) (string, error) {
	name, ok := t.repo.suppliers[id]
	if !ok {
		return "", ErrSupplierNotFound
	}
	return name, nil
}

func (t *memoryPurchaseTx) InsertPurchase(ctx context.Context, row purchaseRow) (*Purchase, error) {
	t.repo.nextID++
	p := Purchase{
		ID:           t.repo.nextID,
		OccurredAt:   time.Now(),
		SupplierID:   row.SupplierID,
		MaterialName: row.MaterialName,
		Quantity:     row.Quantity,
		UnitPrice:    row.UnitPrice,
		Total:        row.Quantity * row.UnitPrice,
	}
	t.repo.purchases = append(t.repo.purchases, p)
	return &p, nil
}

func (t *memoryPurchaseTx) UpsertStock(ctx context.Context, materialName string, quantity float64, defaultUnit string) error {
	entry, ok := t.repo.stock[materialName]
	if !ok {
		entry = stockEntry{unit: defaultUnit}
	}
	entry.quantity += quantity
	t.repo.stock[materialName] = entry
	return nil
}

func (t *memoryPurchaseTx) InsertPurchaseExpense(ctx context.Context, category, description string, amount float64, ref uuid.UUID) error {
	t.repo.expenses = append(t.repo.expenses, bookedExpense{category: category, amount: amount, ref: ref})
	return nil
}

type fakeGuard struct {
	keys    map[string]bool
	deleted []string
}

func (g *fakeGuard) CheckAndInsert(ctx context.Context, key, module string) error {
	if g.keys[key] {
		return shared.ErrIdempotencyConflict
	}
	g.keys[key] = true
	return nil
}

func (g *fakeGuard) Delete(ctx context.Context, key string) error {
	delete(g.keys, key)
	g.deleted = append(g.deleted, key)
	return nil
}

func TestRecordPurchaseValidation(t *testing.T) {
	svc := NewService(newMemoryPurchaseRepo(), nil)

	cases := []RecordPurchaseInput{
		{SupplierID: 0, MaterialName: "Flour", Quantity: 5, UnitPrice: 1000},
		{SupplierID: 1, MaterialName: "  ", Quantity: 5, UnitPrice: 1000},
		{SupplierID: 1, MaterialName: "Flour", Quantity: 0, UnitPrice: 1000},
		{SupplierID: 1, MaterialName: "Flour", Quantity: 5, UnitPrice: -1},
	}
	for _, input := range cases {
		_, err := svc.RecordPurchase(context.Background(), input)
		require.ErrorIs(t, err, shared.ErrValidation)
	}
}

func TestRecordPurchaseBooksMatchingExpense(t *testing.T) {
	repo := newMemoryPurchaseRepo()
	svc := NewService(repo, nil)

	p, err := svc.RecordPurchase(context.Background(), RecordPurchaseInput{
		SupplierID:   1,
		MaterialName: "Flour",
		Quantity:     12.5,
		UnitPrice:    8000,
	})
	require.NoError(t, err)
	require.Equal(t, "CV Maju Jaya", p.SupplierName)
	require.Equal(t, 100000.0, p.Total)

	require.Len(t, repo.expenses, 1)
	exp := repo.expenses[0]
	require.Equal(t, expense.CategoryRawMaterial, exp.category)
	require.Equal(t, p.Total, exp.amount)
	require.Equal(t, shared.PurchaseExpenseRef(p.ID), exp.ref)
}

func TestRecordPurchaseCreatesStockRow(t *testing.T) {
	repo := newMemoryPurchaseRepo()
	svc := NewService(repo, nil)

	_, err := svc.RecordPurchase(context.Background(), RecordPurchaseInput{
		SupplierID:   1,
		MaterialName: "Sugar",
		Quantity:     3,
		UnitPrice:    15000,
	})
	require.NoError(t, err)

	entry, ok := repo.stock["Sugar"]
	require.True(t, ok, "purchase of an unknown material registers it")
	require.Equal(t, 3.0, entry.quantity)
	require.Equal(t, stock.DefaultUnit, entry.unit)
}

func TestRecordPurchaseIncrementsExistingStock(t *testing.T) {
	repo := newMemoryPurchaseRepo()
	repo.stock["Sugar"] = stockEntry{quantity: 7, unit: "kg"}
	svc := NewService(repo, nil)

	_, err := svc.RecordPurchase(context.Background(), RecordPurchaseInput{
		SupplierID:   1,
		MaterialName: "Sugar",
		Quantity:     3,
		UnitPrice:    15000,
	})
	require.NoError(t, err)

	entry := repo.stock["Sugar"]
	require.Equal(t, 10.0, entry.quantity)
	require.Equal(t, "kg", entry.unit, "existing unit is preserved")
}

func TestRecordPurchaseUnknownSupplier(t *testing.T) {
	repo := newMemoryPurchaseRepo()
	svc := NewService(repo, nil)

	_, err := svc.RecordPurchase(context.Background(), RecordPurchaseInput{
		SupplierID:   99,
		MaterialName: "Flour",
		Quantity:     1,
		UnitPrice:    1000,
	})
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Empty(t, repo.expenses)
	require.Empty(t, repo.stock)
}

func TestRecordPurchaseIdempotency(t *testing.T) {
	repo := newMemoryPurchaseRepo()
	guard := &fakeGuard{keys: make(map[string]bool)}
	svc := NewService(repo, guard)

	input := RecordPurchaseInput{
		SupplierID:     1,
		MaterialName:   "Flour",
		Quantity:       5,
		UnitPrice:      8000,
		IdempotencyKey: "req-1",
	}

	_, err := svc.RecordPurchase(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.RecordPurchase(context.Background(), input)
	require.ErrorIs(t, err, shared.ErrIdempotencyConflict)
	require.Len(t, repo.purchases, 1)

	// A failed transaction releases the key so the client can retry.
	input.SupplierID = 99
	input.IdempotencyKey = "req-2"
	_, err = svc.RecordPurchase(context.Background(), input)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Contains(t, guard.deleted, "req-2")
}
