package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tokoledger/tokoledger/internal/catalog"
	"github.com/tokoledger/tokoledger/internal/debt"
	"github.com/tokoledger/tokoledger/internal/expense"
	"github.com/tokoledger/tokoledger/internal/observability"
	"github.com/tokoledger/tokoledger/internal/procurement"
	"github.com/tokoledger/tokoledger/internal/receivable"
	"github.com/tokoledger/tokoledger/internal/reporting"
	"github.com/tokoledger/tokoledger/internal/sales"
	"github.com/tokoledger/tokoledger/internal/stock"
	"github.com/tokoledger/tokoledger/internal/supplier"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	CatalogHandler     *catalog.Handler
	SupplierHandler    *supplier.Handler
	ExpenseHandler     *expense.Handler
	StockHandler       *stock.Handler
	SalesHandler       *sales.Handler
	ProcurementHandler *procurement.Handler
	DebtHandler        *debt.Handler
	ReceivableHandler  *receivable.Handler
	ReportingHandler   *reporting.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/products", params.CatalogHandler.MountRoutes)
		api.Route("/suppliers", params.SupplierHandler.MountRoutes)
		api.Route("/expenses", params.ExpenseHandler.MountRoutes)
		api.Route("/stock", params.StockHandler.MountRoutes)
		api.Route("/sales", params.SalesHandler.MountRoutes)
		api.Route("/purchases", params.ProcurementHandler.MountRoutes)
		api.Route("/debts", params.DebtHandler.MountRoutes)
		api.Route("/receivables", params.ReceivableHandler.MountRoutes)
		api.Route("/reports", params.ReportingHandler.MountRoutes)
	})

	return r
}
