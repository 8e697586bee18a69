package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tokoledger/tokoledger/internal/shared"
)

type memoryReportRepo struct {
	salesTotal      float64
	expenseTotal    float64
	lowStock        []LowStockItem
	debtsDue        []DueEntry
	receivablesDue  []DueEntry
	trend           []TrendPoint
	byCategory      map[string]float64
	byProduct       map[string]ProductSales
	trendFrom       time.Time
	trendTo         time.Time
	totalsQueryFrom time.Time
	totalsQueryTo   time.Time
}

func (r *memoryReportRepo) SalesTotal(ctx context.Context, from, to time.Time) (float64, error) {
	r.totalsQueryFrom, r.totalsQueryTo = from, to
	return r.salesTotal, nil
}

func (r *memoryReportRepo) ExpenseTotal(ctx context.Context, from, to time.Time) (float64, error) {
	return r.expenseTotal, nil
}

func (r *memoryReportRepo) LowStock(ctx context.Context, threshold float64) ([]LowStockItem, error) {
	return r.lowStock, nil
}

func (r *memoryReportRepo) DebtsDueBefore(ctx context.Context, cutoff time.Time) ([]DueEntry, error) {
	return r.debtsDue, nil
}

func (r *memoryReportRepo) ReceivablesDueBefore(ctx context.Context, cutoff time.Time) ([]DueEntry, error) {
	return r.receivablesDue, nil
}

func (r *memoryReportRepo) TrendTotals(ctx context.Context, from, to time.Time) ([]TrendPoint, error) {
	r.trendFrom, r.trendTo = from, to
	return r.trend, nil
}

func (r *memoryReportRepo) ExpenseByCategory(ctx context.Context, from, to time.Time) (map[string]float64, error) {
	return r.byCategory, nil
}

func (r *memoryReportRepo) SalesByProduct(ctx context.Context, from, to time.Time) (map[string]ProductSales, error) {
	return r.byProduct, nil
}

func newTestService(repo *memoryReportRepo, now time.Time) *Service {
	svc := NewService(repo, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestDashboardAssemblesStats(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)
	repo := &memoryReportRepo{
		salesTotal:   120000,
		expenseTotal: 45000,
		lowStock: []LowStockItem{
			{ID: 1, Name: "Sugar", Quantity: 0, Unit: "kg"},
			{ID: 2, Name: "Flour", Quantity: 4.5, Unit: "kg"},
		},
		debtsDue:       []DueEntry{{ID: 1, Counterparty: "Koperasi", Amount: 250000, DueAt: now.AddDate(0, 0, 3)}},
		receivablesDue: []DueEntry{{ID: 7, Counterparty: "Bu Sari", Amount: 30000, DueAt: now.AddDate(0, 0, 5)}},
	}
	svc := newTestService(repo, now)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 120000.0, stats.SalesTotal)
	require.Equal(t, 45000.0, stats.ExpenseTotal)
	require.Equal(t, 75000.0, stats.Net)
	require.Equal(t, shared.StartOfDay(now), stats.Date)

	require.Len(t, stats.LowStock, 2)
	require.Equal(t, "Out", stats.LowStock[0].Status)
	require.Equal(t, "Low", stats.LowStock[1].Status)
	require.Len(t, stats.DebtsDue, 1)
	require.Len(t, stats.ReceivablesDue, 1)
}

func TestTrendDefaultsToSevenDays(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	repo := &memoryReportRepo{trend: []TrendPoint{{Date: "2026-08-30", SalesTotal: 1000}}}
	svc := newTestService(repo, now)

	points, err := svc.Trend(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, points, 1)

	today := shared.StartOfDay(now)
	require.Equal(t, today, repo.trendTo)
	require.Equal(t, today.AddDate(0, 0, -6), repo.trendFrom, "window is 7 days including today")
}

func TestTrendRejectsOversizedWindow(t *testing.T) {
	svc := newTestService(&memoryReportRepo{}, time.Now())

	_, err := svc.Trend(context.Background(), 400)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestReportWorkedExample(t *testing.T) {
	// Two sales of product A (2 units, 15000 total), one of product B
	// (1 unit, 20000) and one 8000 Gas expense.
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	repo := &memoryReportRepo{
		salesTotal:   35000,
		expenseTotal: 8000,
		byCategory:   map[string]float64{"Gas": 8000},
		byProduct: map[string]ProductSales{
			"A": {Units: 2, Revenue: 15000},
			"B": {Units: 1, Revenue: 20000},
		},
	}
	svc := newTestService(repo, now)

	report, err := svc.Report(context.Background(), shared.GranularityDaily, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 35000.0, report.TotalIncome)
	require.Equal(t, 8000.0, report.TotalExpense)
	require.Equal(t, 27000.0, report.Net)
	require.Equal(t, map[string]float64{"Gas": 8000}, report.ExpenseByCategory)
	require.Equal(t, ProductSales{Units: 2, Revenue: 15000}, report.SalesByProduct["A"])
	require.Equal(t, ProductSales{Units: 1, Revenue: 20000}, report.SalesByProduct["B"])
}

func TestReportGranularityWindows(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	today := shared.StartOfDay(now)
	repo := &memoryReportRepo{}
	svc := newTestService(repo, now)

	report, err := svc.Report(context.Background(), shared.GranularityWeekly, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, today.AddDate(0, 0, -7), report.From)
	require.Equal(t, today, report.To)
	// Queries cover the full final day.
	require.Equal(t, today.AddDate(0, 0, 1), repo.totalsQueryTo)

	_, err = svc.Report(context.Background(), shared.ReportGranularity("yearly"), time.Time{}, time.Time{})
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestReportExplicitWindowValidation(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&memoryReportRepo{}, now)

	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Report(context.Background(), shared.GranularityDaily, from, to)
	require.ErrorIs(t, err, shared.ErrValidation)
}
