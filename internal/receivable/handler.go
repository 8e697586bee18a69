package receivable

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tokoledger/tokoledger/internal/platform/httpx"
)

// Handler manages receivable endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers receivable routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Post("/{id}/settle", h.settle)
}

type receivableRequest struct {
	Customer     string  `json:"customer" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	TransactedAt string  `json:"transacted_at"`
	DueAt        string  `json:"due_at" validate:"required"`
}

type receivableResponse struct {
	ID           int64   `json:"id"`
	Customer     string  `json:"customer"`
	Amount       float64 `json:"amount"`
	TransactedAt string  `json:"transacted_at"`
	DueAt        string  `json:"due_at"`
	Status       Status  `json:"status"`
	Overdue      bool    `json:"overdue"`
}

func toReceivableResponse(rec *Receivable, now time.Time) receivableResponse {
	return receivableResponse{
		ID:           rec.ID,
		Customer:     rec.Customer,
		Amount:       rec.Amount,
		TransactedAt: rec.TransactedAt.Format("2006-01-02"),
		DueAt:        rec.DueAt.Format("2006-01-02"),
		Status:       rec.Status,
		Overdue:      Overdue(rec.Status, rec.DueAt, now),
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	receivables, err := h.service.ListReceivables(r.Context(), status)
	if err != nil {
		h.logger.Error("list receivables", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	now := time.Now()
	out := make([]receivableResponse, 0, len(receivables))
	for i := range receivables {
		out = append(out, toReceivableResponse(&receivables[i], now))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req receivableRequest
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
	input := ReceivableInput{Customer: req.Customer, Amount: req.Amount, DueAt: dueAt}
	if req.TransactedAt != "" {
		transactedAt, err := time.Parse("2006-01-02", req.TransactedAt)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "transacted_at must be YYYY-MM-DD")
			return
		}
		input.TransactedAt = transactedAt
	}
	rec, err := h.service.CreateReceivable(r.Context(), input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toReceivableResponse(rec, time.Now()))
}

func (h *Handler) settle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid receivable id")
		return
	}
	rec, err := h.service.Settle(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toReceivableResponse(rec, time.Now()))
}
