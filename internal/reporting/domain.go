package reporting

import (
	"time"

	"github.com/tokoledger/tokoledger/internal/shared"
)

// DashboardStats is the owner's at-a-glance view for one day.
type DashboardStats struct {
	Date           time.Time
	SalesTotal     float64
	ExpenseTotal   float64
	Net            float64
	LowStock       []LowStockItem
	DebtsDue       []DueEntry
	ReceivablesDue []DueEntry
}

// LowStockItem is a stock row flagged on the dashboard.
type LowStockItem struct {
	ID       int64
	Name     string
	Quantity float64
	Unit     string
	Status   string
}

// DueEntry is an unpaid debt or receivable approaching its due date.
type DueEntry struct {
	ID           int64
	Counterparty string
	Amount       float64
	DueAt        time.Time
}

// TrendPoint is one day bucket of the sales-versus-expense series.
type TrendPoint struct {
	Date         string  `json:"date"`
	SalesTotal   float64 `json:"sales_total"`
	ExpenseTotal float64 `json:"expense_total"`
}

// ProductSales aggregates units sold and revenue for one product.
type ProductSales struct {
	Units   float64 `json:"units"`
	Revenue float64 `json:"revenue"`
}

// PeriodReport is the flat aggregation over a date window.
type PeriodReport struct {
	From              time.Time
	To                time.Time
	Granularity       shared.ReportGranularity
	TotalIncome       float64
	TotalExpense      float64
	Net               float64
	ExpenseByCategory map[string]float64
	SalesByProduct    map[string]ProductSales
}
