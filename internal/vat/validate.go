package vat

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vatlens/vatlens/internal/platform/httpx"
)

var validate = validator.New()

// ValidateSalesInvoices rejects malformed sales invoices before aggregation.
// The engine assumes well-formed input; this is the boundary that guarantees
// it.
func ValidateSalesInvoices(invoices []SalesInvoice) error {
	for _, inv := range invoices {
		if err := validate.Struct(inv); err != nil {
			return fmt.Errorf("%w: sales invoice %s: %v", httpx.ErrValidation, inv.InvoiceNumber, err)
		}
	}
	return nil
}

// ValidatePurchaseInvoices rejects malformed purchase invoices, including the
// claimability invariants the struct tags cannot express.
func ValidatePurchaseInvoices(invoices []PurchaseInvoice) error {
	for _, inv := range invoices {
		if err := validate.Struct(inv); err != nil {
			return fmt.Errorf("%w: purchase invoice %s: %v", httpx.ErrValidation, inv.InvoiceNumber, err)
		}
		for _, li := range inv.LineItems {
			if li.ClaimableVatAmount > li.VatAmount+claimableVatTolerance {
				return fmt.Errorf("%w: purchase invoice %s line %s: claimable VAT %.2f exceeds VAT %.2f",
					httpx.ErrValidation, inv.InvoiceNumber, li.ID, li.ClaimableVatAmount, li.VatAmount)
			}
			if li.ClaimableStatus == PartiallyClaimable && li.ClaimablePercent == nil {
				return fmt.Errorf("%w: purchase invoice %s line %s: partially claimable line missing claimablePercent",
					httpx.ErrValidation, inv.InvoiceNumber, li.ID)
			}
		}
	}
	return nil
}
