package procurement

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tokoledger/tokoledger/internal/platform/httpx"
)

// Handler manages material purchase endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers purchase routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.record)
}

type recordPurchaseRequest struct {
	SupplierID   int64   `json:"supplier_id" validate:"required"`
	MaterialName string  `json:"material_name" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	UnitPrice    float64 `json:"unit_price" validate:"gte=0"`
}

type purchaseResponse struct {
	ID           int64     `json:"id"`
	OccurredAt   time.Time `json:"occurred_at"`
	SupplierID   int64     `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	MaterialName string    `json:"material_name"`
	Quantity     float64   `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	Total        float64   `json:"total"`
}

func toPurchaseResponse(p *Purchase) purchaseResponse {
	return purchaseResponse{
		ID:           p.ID,
		OccurredAt:   p.OccurredAt,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		MaterialName: p.MaterialName,
		Quantity:     p.Quantity,
		UnitPrice:    p.UnitPrice,
		Total:        p.Total,
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
	purchases, err := h.service.ListForDay(r.Context(), day)
	if err != nil {
		h.logger.Error("list purchases", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	out := make([]purchaseResponse, 0, len(purchases))
	for i := range purchases {
		out = append(out, toPurchaseResponse(&purchases[i]))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordPurchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	purchase, err := h.service.RecordPurchase(r.Context(), RecordPurchaseInput{
		SupplierID:     req.SupplierID,
		MaterialName:   req.MaterialName,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		IdempotencyKey: r.Header.Get("X-Idempotency-Key"),
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toPurchaseResponse(purchase))
}
