package http

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vatlens/vatlens/internal/vat"
)

func csvLines(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	out := strings.TrimSuffix(buf.String(), "\r\n")
	return strings.Split(out, "\r\n")
}

func TestWriteSummaryCSV(t *testing.T) {
	summary := vat.VatPeriodSummary{
		Period:                     "Q1-2025",
		OutputVat:                  900,
		ClaimableInputVat:          100,
		PartiallyClaimableInputVat: 50,
		NotClaimableInputVat:       300,
		ReviewRequiredInputVat:     400,
		TotalInputVat:              850,
		VatPayable:                 750,
		ExcludedFromCalculation:    2,
	}

	var buf bytes.Buffer
	require.NoError(t, writeSummaryCSV(&buf, summary))

	lines := csvLines(t, &buf)
	require.Equal(t, "# VAT Summary | Period: Q1-2025", lines[0])
	require.Equal(t, "METRIC,AMOUNT (NGN)", lines[1])
	require.Contains(t, lines, "Output VAT (Sales),900.00")
	require.Contains(t, lines, "Total Claimable Input VAT,150.00")
	require.Contains(t, lines, "VAT PAYABLE,750.00")
	require.Contains(t, lines, "Excluded invoices,2")
}

func TestWriteSalesCSVMarksInclusion(t *testing.T) {
	invoices := []vat.SalesInvoice{
		{
			InvoiceNumber:       "INV-001",
			CustomerName:        "Acme Ltd",
			CustomerTIN:         "12345678-0001",
			InvoiceDate:         time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
			IRN:                 "IRN-AAA",
			FiscalizationStatus: vat.FiscalizationValidated,
			PaymentStatus:       vat.PaymentPaid,
			NetAmount:           200, VatAmount: 15, Total: 215,
		},
		{
			InvoiceNumber:       "INV-002",
			FiscalizationStatus: vat.FiscalizationPending,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeSalesCSV(&buf, "2025-02", invoices))

	lines := csvLines(t, &buf)
	require.Equal(t, "# Sales Invoices | Period: 2025-02", lines[0])
	require.Contains(t, lines[1], "Included in VAT Calc")
	require.Equal(t, "INV-001,Acme Ltd,12345678-0001,2025-02-10,IRN-AAA,validated,paid,200.00,15.00,215.00,YES", lines[2])
	require.True(t, strings.HasSuffix(lines[3], ",NO"))
}

func TestWritePurchasesCSVEmitsLineSubRows(t *testing.T) {
	invoices := []vat.PurchaseInvoice{{
		InvoiceNumber:       "PUR-001",
		SupplierName:        "Kano Supplies",
		SupplierTIN:         "87654321-0001",
		InvoiceDate:         time.Date(2025, 2, 12, 0, 0, 0, 0, time.UTC),
		IRN:                 "IRN-BBB",
		FiscalizationStatus: vat.FiscalizationValidated,
		VatAmount:           30,
		LineItems: []vat.PurchaseInvoiceLineItem{{
			InvoiceLineItem:    vat.InvoiceLineItem{ID: "l1", Description: "Office generator fuel", VatAmount: 30},
			ClaimableStatus:    vat.PartiallyClaimable,
			ClaimableVatAmount: 15,
			ReasonCode:         vat.ReasonPartialBusinessUse,
		}},
		OverallClaimableStatus: vat.PartiallyClaimable,
	}}

	var buf bytes.Buffer
	require.NoError(t, writePurchasesCSV(&buf, "2025-02", invoices))

	out := buf.String()
	require.Contains(t, out, "PUR-001,Kano Supplies,87654321-0001,2025-02-12,IRN-BBB,validated,PARTIALLY_CLAIMABLE,30.00,15.00,NO")
	require.Contains(t, out, "→ Office generator fuel")
	require.Contains(t, out, "PARTIAL_BUSINESS_USE")
}
