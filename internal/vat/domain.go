// Package vat interprets NRS-fiscalized invoice data into period-level VAT
// positions. The package owns no state; everything here is a value object and
// the rollup is a pure function over invoice snapshots.
package vat

import "time"

// VatCategory classifies a line for VAT purposes.
type VatCategory string

const (
	CategoryStandard  VatCategory = "standard"
	CategoryZeroRated VatCategory = "zero-rated"
	CategoryExempt    VatCategory = "exempt"
)

// FiscalizationStatus is the NRS validation state of an invoice. Only
// validated invoices count toward any VAT total.
type FiscalizationStatus string

const (
	FiscalizationValidated FiscalizationStatus = "validated"
	FiscalizationRejected  FiscalizationStatus = "rejected"
	FiscalizationCancelled FiscalizationStatus = "cancelled"
	FiscalizationPending   FiscalizationStatus = "pending"
)

// PaymentStatus is the settlement state of an invoice. Informational only.
type PaymentStatus string

const (
	PaymentPaid      PaymentStatus = "paid"
	PaymentUnpaid    PaymentStatus = "unpaid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentPartial   PaymentStatus = "partial"
)

// ClaimableStatus is the per-line input-VAT determination assigned by the NRS
// API. It is never computed locally.
type ClaimableStatus string

const (
	Claimable          ClaimableStatus = "CLAIMABLE"
	PartiallyClaimable ClaimableStatus = "PARTIALLY_CLAIMABLE"
	NotClaimable       ClaimableStatus = "NOT_CLAIMABLE"
	ReviewRequired     ClaimableStatus = "REVIEW_REQUIRED"
)

// ReasonCode explains why a line is not fully claimable.
type ReasonCode string

const (
	ReasonMissingFiscalizedInvoice ReasonCode = "MISSING_FISCALIZED_INVOICE"
	ReasonExemptActivity           ReasonCode = "EXEMPT_ACTIVITY"
	ReasonSupplierNotRegistered    ReasonCode = "SUPPLIER_NOT_REGISTERED"
	ReasonDuplicateIRN             ReasonCode = "DUPLICATE_IRN"
	ReasonInvoiceRejectedByNRS     ReasonCode = "INVOICE_REJECTED_BY_NRS"
	ReasonPartialBusinessUse       ReasonCode = "PARTIAL_BUSINESS_USE"
	ReasonMixedUseAsset            ReasonCode = "MIXED_USE_ASSET"
)

// InvoiceLineItem is one line of a sales invoice.
type InvoiceLineItem struct {
	ID          string      `json:"id" validate:"required"`
	Description string      `json:"description"`
	Quantity    float64     `json:"quantity" validate:"gte=0"`
	UnitPrice   float64     `json:"unitPrice" validate:"gte=0"`
	NetAmount   float64     `json:"netAmount" validate:"gte=0"`
	VatCategory VatCategory `json:"vatCategory" validate:"oneof=standard zero-rated exempt"`
	VatRate     float64     `json:"vatRate" validate:"gte=0,lte=100"`
	VatAmount   float64     `json:"vatAmount" validate:"gte=0"`
	Total       float64     `json:"total" validate:"gte=0"`
}

// PurchaseInvoiceLineItem extends a line with the NRS claimability
// determination.
type PurchaseInvoiceLineItem struct {
	InvoiceLineItem
	ClaimableStatus    ClaimableStatus `json:"claimableStatus" validate:"oneof=CLAIMABLE PARTIALLY_CLAIMABLE NOT_CLAIMABLE REVIEW_REQUIRED"`
	ClaimablePercent   *float64        `json:"claimablePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	ReasonCode         ReasonCode      `json:"reasonCode,omitempty"`
	ClaimableVatAmount float64         `json:"claimableVatAmount" validate:"gte=0"`
}

// RecomputedClaimableVat derives the claimable VAT from the status and
// percent alone, ignoring the supplied claimableVatAmount. Used to cross-check
// upstream data.
func (li PurchaseInvoiceLineItem) RecomputedClaimableVat() float64 {
	switch li.ClaimableStatus {
	case Claimable:
		return li.VatAmount
	case PartiallyClaimable:
		if li.ClaimablePercent == nil {
			return 0
		}
		return li.VatAmount * (*li.ClaimablePercent) / 100
	case NotClaimable, ReviewRequired:
		return 0
	}
	return 0
}

// SalesInvoice is an accounts-receivable invoice.
type SalesInvoice struct {
	ID                  string              `json:"id" validate:"required"`
	IRN                 string              `json:"irn"`
	QRCodeRef           string              `json:"qrCodeRef"`
	InvoiceNumber       string              `json:"invoiceNumber" validate:"required"`
	CustomerName        string              `json:"customerName"`
	CustomerTIN         string              `json:"customerTIN"`
	InvoiceDate         time.Time           `json:"invoiceDate"`
	DueDate             time.Time           `json:"dueDate"`
	FiscalizationStatus FiscalizationStatus `json:"fiscalizationStatus" validate:"oneof=validated rejected cancelled pending"`
	PaymentStatus       PaymentStatus       `json:"paymentStatus"`
	LineItems           []InvoiceLineItem   `json:"lineItems" validate:"dive"`
	NetAmount           float64             `json:"netAmount" validate:"gte=0"`
	VatAmount           float64             `json:"vatAmount" validate:"gte=0"`
	Total               float64             `json:"total" validate:"gte=0"`
}

// PurchaseInvoice is an accounts-payable invoice.
type PurchaseInvoice struct {
	ID                     string                    `json:"id" validate:"required"`
	IRN                    string                    `json:"irn"`
	QRCodeRef              string                    `json:"qrCodeRef"`
	InvoiceNumber          string                    `json:"invoiceNumber" validate:"required"`
	SupplierName           string                    `json:"supplierName"`
	SupplierTIN            string                    `json:"supplierTIN"`
	InvoiceDate            time.Time                 `json:"invoiceDate"`
	FiscalizationStatus    FiscalizationStatus       `json:"fiscalizationStatus" validate:"oneof=validated rejected cancelled pending"`
	PaymentStatus          PaymentStatus             `json:"paymentStatus"`
	LineItems              []PurchaseInvoiceLineItem `json:"lineItems" validate:"dive"`
	NetAmount              float64                   `json:"netAmount" validate:"gte=0"`
	VatAmount              float64                   `json:"vatAmount" validate:"gte=0"`
	Total                  float64                   `json:"total" validate:"gte=0"`
	OverallClaimableStatus ClaimableStatus           `json:"overallClaimableStatus"`
}

// ClaimableVatTotal sums the claimable VAT carried on the invoice lines.
func (inv PurchaseInvoice) ClaimableVatTotal() float64 {
	var sum float64
	for _, li := range inv.LineItems {
		sum += li.ClaimableVatAmount
	}
	return sum
}

// VatPeriodSummary is the derived VAT position for one reporting period.
// Recomputed fresh per period selection, never mutated in place.
type VatPeriodSummary struct {
	Period                     string  `json:"period"`
	OutputVat                  float64 `json:"outputVat"`
	ClaimableInputVat          float64 `json:"claimableInputVat"`
	PartiallyClaimableInputVat float64 `json:"partiallyClaimableInputVat"`
	NotClaimableInputVat       float64 `json:"notClaimableInputVat"`
	ReviewRequiredInputVat     float64 `json:"reviewRequiredInputVat"`
	TotalInputVat              float64 `json:"totalInputVat"`
	VatPayable                 float64 `json:"vatPayable"`
	SalesInvoiceCount          int     `json:"salesInvoiceCount"`
	PurchaseInvoiceCount       int     `json:"purchaseInvoiceCount"`
	FiscalizedSalesCount       int     `json:"fiscalizedSalesCount"`
	FiscalizedPurchaseCount    int     `json:"fiscalizedPurchaseCount"`
	ExcludedFromCalculation    int     `json:"excludedFromCalculation"`
}
