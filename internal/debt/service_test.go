package debt

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/shared"
)

type settlementExpense struct {
	category    string
	description string
	amount      float64
	ref         uuid.UUID
}

type memoryDebtRepo struct {
	debts    map[int64]Debt
	expenses []settlementExpense
	nextID   int64
}

func newMemoryDebtRepo() *memoryDebtRepo {
	return &memoryDebtRepo{debts: make(map[int64]Debt)}
}

func (r *memoryDebtRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryDebtTx{repo: r})
}

func (r *memoryDebtRepo) CreateDebt(ctx context.Context, input DebtInput) (*Debt, error) {
	r.nextID++
	now := time.Now()
	d := Debt{
		ID:           r.nextID,
		Counterparty: input.Counterparty,
		Amount:       input.Amount,
		BorrowedAt:   input.BorrowedAt,
		DueAt:        input.DueAt,
		Status:       StatusUnpaid,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.debts[d.ID] = d
	return &d, nil
}

func (r *memoryDebtRepo) ListDebts(ctx context.Context, status Status) ([]Debt, error) {
	var out []Debt
	for _, d := range r.debts {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type memoryDebtTx struct {
	repo *memoryDebtRepo
}

func (t *memoryDebtTx) MarkPaid(ctx context.Context, id int64) (*Debt, error) {
	d, ok := t.repo.debts[id]
	if !ok {
		return nil, ErrDebtNotFound
	}
	if d.Status != StatusUnpaid {
		return nil, ErrAlreadySettled
	}
	d.Status = StatusPaid
	d.UpdatedAt = time.Now()
	t.repo.debts[id] = d
	return &d, nil
}

func (t *memoryDebtTx) InsertSettlementExpense(ctx context.Context, category, description string, amount float64, ref uuid.UUID) error {
	t.repo.expenses = append(t.repo.expenses, settlementExpense{category: category, description: description, amount: amount, ref: ref})
	return nil
}

func TestCreateDebtValidation(t *testing.T) {
	svc := NewService(newMemoryDebtRepo())

	_, err := svc.CreateDebt(context.Background(), DebtInput{Counterparty: "", Amount: 100000, DueAt: time.Now()})
	require.ErrorIs(t, err, shared.ErrValidation)

	_, err = svc.CreateDebt(context.Background(), DebtInput{Counterparty: "Koperasi", Amount: -1, DueAt: time.Now()})
	require.ErrorIs(t, err, shared.ErrValidation)

	d, err := svc.CreateDebt(context.Background(), DebtInput{Counterparty: "Koperasi", Amount: 100000, DueAt: time.Now().AddDate(0, 1, 0)})
	require.NoError(t, err)
	require.Equal(t, StatusUnpaid, d.Status)
	require.False(t, d.BorrowedAt.IsZero(), "borrow date defaults to today")
}

func TestSettleRecordsExpense(t *testing.T) {
	repo := newMemoryDebtRepo()
	svc := NewService(repo)

	d, err := svc.CreateDebt(context.Background(), DebtInput{Counterparty: "Koperasi", Amount: 250000, DueAt: time.Now().AddDate(0, 0, 14)})
	require.NoError(t, err)

	settled, err := svc.Settle(context.Background(), d.ID)
	require.NoError(t, err)
	require.Equal(t, StatusPaid, settled.Status)

	require.Len(t, repo.expenses, 1)
	exp := repo.expenses[0]
	require.Equal(t, expense.CategoryOther, exp.category)
	require.Equal(t, "Debt settlement", exp.description)
	require.Equal(t, 250000.0, exp.amount)
	require.Equal(t, shared.DebtSettlementRef(d.ID), exp.ref)
}

func TestSettleTwiceFailsWithoutDuplicateExpense(t *testing.T) {
	repo := newMemoryDebtRepo()
	svc := NewService(repo)

	d, err := svc.CreateDebt(context.Background(), DebtInput{Counterparty: "Koperasi", Amount: 250000, DueAt: time.Now()})
	require.NoError(t, err)

	_, err = svc.Settle(context.Background(), d.ID)
	require.NoError(t, err)

	// A second settle, as racing clicks would issue, must not duplicate the
	// settlement expense.
	_, err = svc.Settle(context.Background(), d.ID)
	require.ErrorIs(t, err, shared.ErrInvalidState)
	require.Len(t, repo.expenses, 1)
}

func TestSettleMissingDebt(t *testing.T) {
	svc := NewService(newMemoryDebtRepo())

	_, err := svc.Settle(context.Background(), 404)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	require.True(t, Overdue(StatusUnpaid, now.AddDate(0, 0, -1), now))
	require.False(t, Overdue(StatusUnpaid, now, now))
	require.False(t, Overdue(StatusPaid, now.AddDate(-1, 0, 0), now))
}
