package reporting

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tokoledger/tokoledger/internal/shared"
	"github.com/tokoledger/tokoledger/internal/stock"
)

const (
	// DefaultTrendDays is the window shown on the dashboard chart.
	DefaultTrendDays = 7
	maxTrendDays     = 366

	dueSoonDays = 7
)

// RepositoryPort defines the aggregate queries the service depends on.
type RepositoryPort interface {
	SalesTotal(ctx context.Context, from, to time.Time) (float64, error)
	ExpenseTotal(ctx context.Context, from, to time.Time) (float64, error)
	LowStock(ctx context.Context, threshold float64) ([]LowStockItem, error)
	DebtsDueBefore(ctx context.Context, cutoff time.Time) ([]DueEntry, error)
	ReceivablesDueBefore(ctx context.Context, cutoff time.Time) ([]DueEntry, error)
	TrendTotals(ctx context.Context, from, to time.Time) ([]TrendPoint, error)
	ExpenseByCategory(ctx context.Context, from, to time.Time) (map[string]float64, error)
	SalesByProduct(ctx context.Context, from, to time.Time) (map[string]ProductSales, error)
}

// Service assembles dashboard, trend and period report payloads. The cache
// may be nil.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	now   func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// Dashboard returns today's stats. The underlying queries run concurrently
// and the assembled payload is cached until the short TTL expires.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	today := shared.StartOfDay(s.now())

	loader := func(ctx context.Context) (interface{}, error) {
		return s.loadDashboard(ctx, today)
	}

	var stats DashboardStats
	if err := s.cache.FetchJSON(ctx, keyDashboard(today), &stats, loader); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Service) loadDashboard(ctx context.Context, today time.Time) (*DashboardStats, error) {
	tomorrow := today.AddDate(0, 0, 1)
	cutoff := today.AddDate(0, 0, dueSoonDays)

	stats := DashboardStats{Date: today}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.SalesTotal, err = s.repo.SalesTotal(ctx, today, tomorrow)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ExpenseTotal, err = s.repo.ExpenseTotal(ctx, today, tomorrow)
		return err
	})
	g.Go(func() error {
		items, err := s.repo.LowStock(ctx, stock.LowStockThreshold)
		if err != nil {
			return err
		}
		for i := range items {
			items[i].Status = string(stock.StatusOf(items[i].Quantity))
		}
		stats.LowStock = items
		return nil
	})
	g.Go(func() error {
		var err error
		stats.DebtsDue, err = s.repo.DebtsDueBefore(ctx, cutoff)
		return err
	})
	g.Go(func() error {
		var err error
		stats.ReceivablesDue, err = s.repo.ReceivablesDueBefore(ctx, cutoff)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Net = stats.SalesTotal - stats.ExpenseTotal
	return &stats, nil
}

// Trend returns the daily sales and expense series for the trailing window
// ending today. Zero or negative days falls back to the default window.
func (s *Service) Trend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	if days > maxTrendDays {
		return nil, fmt.Errorf("%w: trend window cannot exceed %d days", shared.ErrValidation, maxTrendDays)
	}

	today := shared.StartOfDay(s.now())
	from := today.AddDate(0, 0, -(days - 1))

	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.TrendTotals(ctx, from, today)
	}

	var points []TrendPoint
	if err := s.cache.FetchJSON(ctx, keyTrend(days, today), &points, loader); err != nil {
		return nil, err
	}
	return points, nil
}

// Report aggregates the window selected either by explicit dates or by the
// granularity's default window ending today.
func (s *Service) Report(ctx context.Context, granularity shared.ReportGranularity, from, to time.Time) (*PeriodReport, error) {
	if from.IsZero() || to.IsZero() {
		var err error
		from, to, err = shared.PeriodRange(granularity, s.now())
		if err != nil {
			return nil, err
		}
	} else {
		from = shared.StartOfDay(from)
		to = shared.StartOfDay(to)
		if to.Before(from) {
			return nil, fmt.Errorf("%w: report window ends before it starts", shared.ErrValidation)
		}
	}
	end := to.AddDate(0, 0, 1)

	report := PeriodReport{From: from, To: to, Granularity: granularity}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.TotalIncome, err = s.repo.SalesTotal(ctx, from, end)
		return err
	})
	g.Go(func() error {
		var err error
		report.TotalExpense, err = s.repo.ExpenseTotal(ctx, from, end)
		return err
	})
	g.Go(func() error {
		var err error
		report.ExpenseByCategory, err = s.repo.ExpenseByCategory(ctx, from, end)
		return err
	})
	g.Go(func() error {
		var err error
		report.SalesByProduct, err = s.repo.SalesByProduct(ctx, from, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Net = report.TotalIncome - report.TotalExpense
	return &report, nil
}
