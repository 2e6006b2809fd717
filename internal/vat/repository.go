package vat

import "context"

// Repository abstracts invoice retrieval for one reporting period. The
// engine never talks to it directly; the service fetches a snapshot and hands
// it over.
type Repository interface {
	ListSalesInvoices(ctx context.Context, period string) ([]SalesInvoice, error)
	ListPurchaseInvoices(ctx context.Context, period string) ([]PurchaseInvoice, error)
}
