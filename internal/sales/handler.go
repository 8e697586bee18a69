package sales

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tokoledger/tokoledger/internal/platform/httpx"
)

// Handler manages sales endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.record)
}

type recordSaleRequest struct {
	ProductID     int64   `json:"product_id" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=CASH NON_CASH RECEIVABLE"`
	Note          string  `json:"note"`
	CustomerName  string  `json:"customer_name"`
}

type transactionResponse struct {
	ID            int64      `json:"id"`
	OccurredAt    time.Time  `json:"occurred_at"`
	ProductID     *int64     `json:"product_id"`
	ProductName   string     `json:"product_name,omitempty"`
	Quantity      float64    `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"payment_method"`
	Note          string     `json:"note"`
	ReceivableRef *uuid.UUID `json:"receivable_ref,omitempty"`
}

func toTransactionResponse(tx *Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		OccurredAt:    tx.OccurredAt,
		ProductID:     tx.ProductID,
		ProductName:   tx.ProductName,
		Quantity:      tx.Quantity,
		UnitPrice:     tx.UnitPrice,
		Total:         tx.Total,
		PaymentMethod: string(tx.PaymentMethod),
		Note:          tx.Note,
		ReceivableRef: tx.ReceivableRef,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}
	txs, err := h.service.ListForDay(r.Context(), day)
	if err != nil {
		h.logger.Error("list sales", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionResponse(&txs[i]))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordSaleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	tx, err := h.service.RecordSale(r.Context(), RecordSaleInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		PaymentMethod:  PaymentMethod(req.PaymentMethod),
		Note:           req.Note,
		CustomerName:   req.CustomerName,
		IdempotencyKey: r.Header.Get("X-Idempotency-Key"),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toTransactionResponse(tx))
}
