package debt

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tokoledger/tokoledger/internal/platform/httpx"
)

// Handler manages debt endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers debt routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/settle", h.settle)
}

type debtRequest struct {
	Counterparty string  `json:"counterparty" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	BorrowedAt   string  `json:"borrowed_at"`
	DueAt        string  `json:"due_at" validate:"required"`
}

type debtResponse struct {
	ID           int64   `json:"id"`
	Counterparty string  `json:"counterparty"`
	Amount       float64 `json:"amount"`
	BorrowedAt   string  `json:"borrowed_at"`
	DueAt        string  `json:"due_at"`
	Status       Status  `json:"status"`
	Overdue      bool    `json:"overdue"`
}

func toDebtResponse(d *Debt, now time.Time) debtResponse {
	return debtResponse{
		ID:           d.ID,
		Counterparty: d.Counterparty,
		Amount:       d.Amount,
		BorrowedAt:   d.BorrowedAt.Format("2006-01-02"),
		DueAt:        d.DueAt.Format("2006-01-02"),
		Status:       d.Status,
		Overdue:      Overdue(d.Status, d.DueAt, now),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	debts, err := h.service.ListDebts(r.Context(), status)
	if err != nil {
		h.logger.Error("list debts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	now := time.Now()
	out := make([]debtResponse, 0, len(debts))
	for i := range debts {
		out = append(out, toDebtResponse(&debts[i], now))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	dueAt, err := time.Parse("2006-01-02", req.DueAt)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "due_at must be YYYY-MM-DD")
		return
	}
	input := DebtInput{Counterparty: req.Counterparty, Amount: req.Amount, DueAt: dueAt}
	if req.BorrowedAt != "" {
		borrowedAt, err := time.Parse("2006-01-02", req.BorrowedAt)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "borrowed_at must be YYYY-MM-DD")
			return
		}
		input.BorrowedAt = borrowedAt
	}
	d, err := h.service.CreateDebt(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toDebtResponse(d, time.Now()))
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid debt id")
		return
	}
	d, err := h.service.Settle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toDebtResponse(d, time.Now()))
}
