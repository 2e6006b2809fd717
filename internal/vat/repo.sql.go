package vat

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the PostgreSQL-backed invoice repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// periodCodes expands a quarter key into the month codes it spans. Invoices
// are stored under their month, so "Q1-2025" must match the three months of
// that quarter. Month keys and unknown keys pass through unchanged.
func periodCodes(period string) []string {
	if len(period) != 7 || period[0] != 'Q' {
		return []string{period}
	}
	year := period[3:]
	var months []string
	switch period[1] {
	case '1':
		months = []string{"01", "02", "03"}
	case '2':
		months = []string{"04", "05", "06"}
	case '3':
		months = []string{"07", "08", "09"}
	case '4':
		months = []string{"10", "11", "12"}
	default:
		return []string{period}
	}
	codes := make([]string, 0, len(months))
	for _, m := range months {
		codes = append(codes, year+"-"+m)
	}
	return codes
}

const listSalesSQL = `
SELECT id, irn, qr_code_ref, invoice_number, customer_name, customer_tin,
       invoice_date, due_date, fiscalization_status, payment_status,
       net_amount, vat_amount, total
FROM sales_invoices
WHERE period_code = ANY($1)
ORDER BY invoice_date, invoice_number`

const listSalesLinesSQL = `
SELECT invoice_id, id, description, quantity, unit_price, net_amount,
       vat_category, vat_rate, vat_amount, total
FROM sales_invoice_lines
WHERE invoice_id = ANY($1)
ORDER BY invoice_id, position`

func (r *repository) ListSalesInvoices(ctx context.Context, period string) ([]SalesInvoice, error) {
	rows, err := r.pool.Query(ctx, listSalesSQL, periodCodes(period))
	if err != nil {
		return nil, fmt.Errorf("vat: list sales invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]SalesInvoice, 0)
	index := make(map[string]int)
	ids := make([]string, 0)
	for rows.Next() {
		var inv SalesInvoice
		if err := rows.Scan(&inv.ID, &inv.IRN, &inv.QRCodeRef, &inv.InvoiceNumber,
			&inv.CustomerName, &inv.CustomerTIN, &inv.InvoiceDate, &inv.DueDate,
			&inv.FiscalizationStatus, &inv.PaymentStatus,
			&inv.NetAmount, &inv.VatAmount, &inv.Total); err != nil {
			return nil, fmt.Errorf("vat: scan sales invoice: %w", err)
		}
		index[inv.ID] = len(invoices)
		ids = append(ids, inv.ID)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return invoices, nil
	}

	lineRows, err := r.pool.Query(ctx, listSalesLinesSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("vat: list sales lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var invoiceID string
		var li InvoiceLineItem
		if err := lineRows.Scan(&invoiceID, &li.ID, &li.Description, &li.Quantity,
			&li.UnitPrice, &li.NetAmount, &li.VatCategory, &li.VatRate,
			&li.VatAmount, &li.Total); err != nil {
			return nil, fmt.Errorf("vat: scan sales line: %w", err)
		}
		if i, ok := index[invoiceID]; ok {
			invoices[i].LineItems = append(invoices[i].LineItems, li)
		}
	}
	return invoices, lineRows.Err()
}

const listPurchasesSQL = `
SELECT id, irn, qr_code_ref, invoice_number, supplier_name, supplier_tin,
       invoice_date, fiscalization_status, payment_status,
       net_amount, vat_amount, total, overall_claimable_status
FROM purchase_invoices
WHERE period_code = ANY($1)
ORDER BY invoice_date, invoice_number`

const listPurchaseLinesSQL = `
SELECT invoice_id, id, description, quantity, unit_price, net_amount,
       vat_category, vat_rate, vat_amount, total,
       claimable_status, claimable_percent, reason_code, claimable_vat_amount
FROM purchase_invoice_lines
WHERE invoice_id = ANY($1)
ORDER BY invoice_id, position`

func (r *repository) ListPurchaseInvoices(ctx context.Context, period string) ([]PurchaseInvoice, error) {
	rows, err := r.pool.Query(ctx, listPurchasesSQL, periodCodes(period))
	if err != nil {
		return nil, fmt.Errorf("vat: list purchase invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]PurchaseInvoice, 0)
	index := make(map[string]int)
	ids := make([]string, 0)
	for rows.Next() {
		var inv PurchaseInvoice
		var overall *string
		if err := rows.Scan(&inv.ID, &inv.IRN, &inv.QRCodeRef, &inv.InvoiceNumber,
			&inv.SupplierName, &inv.SupplierTIN, &inv.InvoiceDate,
			&inv.FiscalizationStatus, &inv.PaymentStatus,
			&inv.NetAmount, &inv.VatAmount, &inv.Total, &overall); err != nil {
			return nil, fmt.Errorf("vat: scan purchase invoice: %w", err)
		}
		if overall != nil {
			inv.OverallClaimableStatus = ClaimableStatus(*overall)
		}
		index[inv.ID] = len(invoices)
		ids = append(ids, inv.ID)
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return invoices, nil
	}

	lineRows, err := r.pool.Query(ctx, listPurchaseLinesSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("vat: list purchase lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var invoiceID string
		var li PurchaseInvoiceLineItem
		var reason *string
		if err := lineRows.Scan(&invoiceID, &li.ID, &li.Description, &li.Quantity,
			&li.UnitPrice, &li.NetAmount, &li.VatCategory, &li.VatRate,
			&li.VatAmount, &li.Total,
			&li.ClaimableStatus, &li.ClaimablePercent, &reason, &li.ClaimableVatAmount); err != nil {
			return nil, fmt.Errorf("vat: scan purchase line: %w", err)
		}
		if reason != nil {
			li.ReasonCode = ReasonCode(*reason)
		}
		if i, ok := index[invoiceID]; ok {
			invoices[i].LineItems = append(invoices[i].LineItems, li)
		}
	}
	return invoices, lineRows.Err()
}
