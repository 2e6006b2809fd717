package cart

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/vatlens/vatlens/internal/money"
	"github.com/vatlens/vatlens/internal/platform/httpx"
)

// QuoteLine is one request line for a cart quote.
type QuoteLine struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice" validate:"gte=0"`
	VatRate   float64 `json:"vatRate" validate:"gte=0,lte=100"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
}

// QuoteRequest is the payload for POST /cart/quote.
type QuoteRequest struct {
	Items []QuoteLine `json:"items" validate:"dive"`
}

// QuoteResponse returns the aggregated totals plus display strings.
type QuoteResponse struct {
	Totals
	Formatted struct {
		Subtotal  string `json:"subtotal"`
		VatAmount string `json:"vatAmount"`
		Total     string `json:"total"`
	} `json:"formatted"`
}

// Handler exposes the cart quote endpoint.
type Handler struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewHandler constructs the cart handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, validate: validator.New()}
}

// MountRoutes attaches cart routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/quote", h.quote)
}

func (h *Handler) quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.logger.Warn("cart quote rejected", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	items := make([]Item, 0, len(req.Items))
	for _, line := range req.Items {
		items = append(items, Item{
			Product:  Product{Name: line.Name, BasePrice: line.BasePrice, VatRate: line.VatRate},
			Quantity: line.Quantity,
		})
	}

	var resp QuoteResponse
	resp.Totals = ComputeTotals(items)
	resp.Formatted.Subtotal = money.FormatCurrency(resp.Subtotal)
	resp.Formatted.VatAmount = money.FormatCurrency(resp.VatAmount)
	resp.Formatted.Total = money.FormatCurrency(resp.Total)
	httpx.JSON(w, http.StatusOK, resp)
}
