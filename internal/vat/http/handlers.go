// Package http exposes the read-only VAT endpoints: period summaries,
// invoice listings and CSV exports.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vatlens/vatlens/internal/platform/httpx"
	"github.com/vatlens/vatlens/internal/vat"
)

// Handler serves the VAT routes.
type Handler struct {
	logger  *slog.Logger
	service *vat.Service
}

// NewHandler constructs the VAT handler.
func NewHandler(logger *slog.Logger, service *vat.Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the VAT routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/sales", h.sales)
	r.Get("/purchases", h.purchases)
	r.Get("/export/summary.csv", h.exportSummary)
	r.Get("/export/sales.csv", h.exportSales)
	r.Get("/export/purchases.csv", h.exportPurchases)
}

func (h *Handler) period(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("period"))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), h.period(r))
	if err != nil {
		h.respondError(w, r, "vat summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) sales(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.PeriodData(r.Context(), h.period(r))
	if err != nil {
		h.respondError(w, r, "list sales invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, data.Sales)
}

func (h *Handler) purchases(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.PeriodData(r.Context(), h.period(r))
	if err != nil {
		h.respondError(w, r, "list purchase invoices", err)
		return
	}
	httpx.JSON(w, http.StatusOK, data.Purchases)
}

func (h *Handler) exportSummary(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	data, err := h.service.PeriodData(r.Context(), period)
	if err != nil {
		h.respondError(w, r, "export vat summary", err)
		return
	}
	h.serveCSV(w, "vat-summary-"+period+".csv")
	if err := writeSummaryCSV(w, data.Summary); err != nil {
		h.logger.Error("write summary csv", slog.Any("error", err))
	}
}

func (h *Handler) exportSales(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	data, err := h.service.PeriodData(r.Context(), period)
	if err != nil {
		h.respondError(w, r, "export sales invoices", err)
		return
	}
	h.serveCSV(w, "sales-invoices-"+period+".csv")
	if err := writeSalesCSV(w, period, data.Sales); err != nil {
		h.logger.Error("write sales csv", slog.Any("error", err))
	}
}

func (h *Handler) exportPurchases(w http.ResponseWriter, r *http.Request) {
	period := h.period(r)
	data, err := h.service.PeriodData(r.Context(), period)
	if err != nil {
		h.respondError(w, r, "export purchase invoices", err)
		return
	}
	h.serveCSV(w, "purchase-invoices-"+period+".csv")
	if err := writePurchasesCSV(w, period, data.Purchases); err != nil {
		h.logger.Error("write purchases csv", slog.Any("error", err))
	}
}

func (h *Handler) serveCSV(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, httpx.ErrValidation) {
		httpx.RespondError(w, err)
		return
	}
	h.logger.Error(op+" failed", slog.String("period", h.period(r)), slog.Any("error", err))
	httpx.RespondError(w, err)
}
