package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/vatlens/vatlens/internal/vat"
)

type stubRepo struct {
	sales     map[string][]vat.SalesInvoice
	purchases map[string][]vat.PurchaseInvoice
}

func (r *stubRepo) ListSalesInvoices(ctx context.Context, period string) ([]vat.SalesInvoice, error) {
	return r.sales[period], nil
}

func (r *stubRepo) ListPurchaseInvoices(ctx context.Context, period string) ([]vat.PurchaseInvoice, error) {
	return r.purchases[period], nil
}

func testRouter(t *testing.T, repo *stubRepo) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	svc := vat.NewService(repo, nil, logger)
	r := chi.NewRouter()
	r.Route("/vat", NewHandler(logger, svc).MountRoutes)
	return r
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func seededRepo() *stubRepo {
	return &stubRepo{
		sales: map[string][]vat.SalesInvoice{
			"Q1-2025": {{
				ID:                  "si-1",
				InvoiceNumber:       "INV-001",
				CustomerName:        "Acme Ltd",
				InvoiceDate:         time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
				FiscalizationStatus: vat.FiscalizationValidated,
				LineItems: []vat.InvoiceLineItem{{
					ID: "l1", Quantity: 1, UnitPrice: 200, NetAmount: 200,
					VatCategory: vat.CategoryStandard, VatRate: 7.5, VatAmount: 15, Total: 215,
				}},
				NetAmount: 200, VatAmount: 15, Total: 215,
			}},
		},
		purchases: map[string][]vat.PurchaseInvoice{},
	}
}

func TestSummaryEndpoint(t *testing.T) {
	router := testRouter(t, seededRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vat/summary?period=Q1-2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"outputVat":15`)
	require.Contains(t, rec.Body.String(), `"period":"Q1-2025"`)
}

func TestSummaryEndpointRejectsBadPeriod(t *testing.T) {
	router := testRouter(t, seededRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vat/summary?period=banana", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Validation Failed")
}

func TestSalesEndpointReturnsInvoices(t *testing.T) {
	router := testRouter(t, seededRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vat/sales?period=Q1-2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "INV-001")
}

func TestExportSummaryCSV(t *testing.T) {
	router := testRouter(t, seededRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vat/export/summary.csv?period=Q1-2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), "vat-summary-Q1-2025.csv")
	require.Contains(t, rec.Body.String(), "Output VAT (Sales),15.00")
}

func TestExportSalesCSV(t *testing.T) {
	router := testRouter(t, seededRepo())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vat/export/sales.csv?period=Q1-2025", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "sales-invoices-Q1-2025.csv")
	require.Contains(t, rec.Body.String(), "INV-001")
	require.Contains(t, rec.Body.String(), "YES")
}
