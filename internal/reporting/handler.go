package reporting

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tokoledger/tokoledger/internal/platform/httpx"
	"github.com/tokoledger/tokoledger/internal/shared"
)

// Handler manages reporting endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers reporting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/trend", h.trend)
	r.Get("/report", h.report)
}

type dashboardResponse struct {
	Date           string              `json:"date"`
	SalesTotal     float64             `json:"sales_total"`
	ExpenseTotal   float64             `json:"expense_total"`
	Net            float64             `json:"net"`
	LowStock       []lowStockResponse `json:"low_stock"`
	DebtsDue       []dueEntryResponse `json:"debts_due"`
	ReceivablesDue []dueEntryResponse `json:"receivables_due"`
}

type lowStockResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Status   string  `json:"status"`
}

type dueEntryResponse struct {
	ID           int64   `json:"id"`
	Counterparty string  `json:"counterparty"`
	Amount       float64 `json:"amount"`
	DueAt        string  `json:"due_at"`
}

type periodReportResponse struct {
	From              string                  `json:"from"`
	To                string                  `json:"to"`
	Granularity       string                  `json:"granularity"`
	TotalIncome       float64                 `json:"total_income"`
	TotalExpense      float64                 `json:"total_expense"`
	Net               float64                 `json:"net"`
	ExpenseByCategory map[string]float64      `json:"expense_by_category"`
	SalesByProduct    map[string]ProductSales `json:"sales_by_product"`
}

func toDueEntries(entries []DueEntry) []dueEntryResponse {
	out := make([]dueEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dueEntryResponse{
			ID:           e.ID,
			Counterparty: e.Counterparty,
			Amount:       e.Amount,
			DueAt:        e.DueAt.Format("2006-01-02"),
		})
	}
	return out
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("load dashboard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	lowStock := make([]lowStockResponse, 0, len(stats.LowStock))
	for _, item := range stats.LowStock {
		lowStock = append(lowStock, lowStockResponse(item))
	}
	httpx.JSON(w, http.StatusOK, dashboardResponse{
		Date:           stats.Date.Format("2006-01-02"),
		SalesTotal:     stats.SalesTotal,
		ExpenseTotal:   stats.ExpenseTotal,
		Net:            stats.Net,
		LowStock:       lowStock,
		DebtsDue:       toDueEntries(stats.DebtsDue),
		ReceivablesDue: toDueEntries(stats.ReceivablesDue),
	})
}

func (h *Handler) trend(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "days must be an integer")
			return
		}
		days = parsed
	}
	points, err := h.service.Trend(r.Context(), days)
	if err != nil {
		h.logger.Error("load trend", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, points)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	granularity := shared.ReportGranularity(r.URL.Query().Get("granularity"))
	if granularity == "" {
		granularity = shared.GranularityDaily
	}

	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "from must be YYYY-MM-DD")
			return
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "to must be YYYY-MM-DD")
			return
		}
		to = parsed
	}

	report, err := h.service.Report(r.Context(), granularity, from, to)
	if err != nil {
		h.logger.Error("load period report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, periodReportResponse{
		From:              report.From.Format("2006-01-02"),
		To:                report.To.Format("2006-01-02"),
		Granularity:       string(report.Granularity),
		TotalIncome:       report.TotalIncome,
		TotalExpense:      report.TotalExpense,
		Net:               report.Net,
		ExpenseByCategory: report.ExpenseByCategory,
		SalesByProduct:    report.SalesByProduct,
	})
}
