package vat

import (
	"fmt"
	"math"

	"github.com/vatlens/vatlens/internal/money"
)

// claimableVatTolerance bounds the accepted gap between the upstream
// claimableVatAmount and the value recomputed from vatAmount and percent.
const claimableVatTolerance = 0.005

// BuildPeriodSummary derives the VAT position for one reporting period from
// an immutable snapshot of its sales and purchase invoices. The returned
// warnings flag data-integrity conditions (the supplied value is still
// trusted); the computation itself never fails.
//
// Only NRS-validated invoices contribute numerically. Everything else is
// tallied into ExcludedFromCalculation and the fiscalized-count shortfall.
func BuildPeriodSummary(period string, sales []SalesInvoice, purchases []PurchaseInvoice) (VatPeriodSummary, []string) {
	summary := VatPeriodSummary{
		Period:               period,
		SalesInvoiceCount:    len(sales),
		PurchaseInvoiceCount: len(purchases),
	}
	warnings := make([]string, 0)

	var outputVat float64
	for _, inv := range sales {
		if inv.FiscalizationStatus != FiscalizationValidated {
			continue
		}
		summary.FiscalizedSalesCount++
		// Output VAT is a flat sum; no claimability concept on the sales side.
		outputVat += inv.VatAmount
	}

	var claimable, partial, notClaimable, review float64
	for _, inv := range purchases {
		if inv.FiscalizationStatus != FiscalizationValidated {
			// Non-validated purchases contribute to no bucket, not even
			// NOT_CLAIMABLE.
			continue
		}
		summary.FiscalizedPurchaseCount++
		for _, li := range inv.LineItems {
			switch li.ClaimableStatus {
			case Claimable:
				claimable += li.VatAmount
			case PartiallyClaimable:
				recomputed := li.RecomputedClaimableVat()
				if math.Abs(recomputed-li.ClaimableVatAmount) > claimableVatTolerance {
					warnings = append(warnings, fmt.Sprintf(
						"invoice %s line %s: supplied claimable VAT %.2f differs from recomputed %.2f",
						inv.InvoiceNumber, li.ID, li.ClaimableVatAmount, recomputed))
				}
				// The unclaimed remainder belongs to no bucket.
				partial += li.ClaimableVatAmount
			case NotClaimable:
				notClaimable += li.VatAmount
			case ReviewRequired:
				// Never claimable until resolved upstream, percent or not.
				review += li.VatAmount
			}
		}
	}

	summary.ExcludedFromCalculation = (summary.SalesInvoiceCount - summary.FiscalizedSalesCount) +
		(summary.PurchaseInvoiceCount - summary.FiscalizedPurchaseCount)

	summary.OutputVat = money.Round2(outputVat)
	summary.ClaimableInputVat = money.Round2(claimable)
	summary.PartiallyClaimableInputVat = money.Round2(partial)
	summary.NotClaimableInputVat = money.Round2(notClaimable)
	summary.ReviewRequiredInputVat = money.Round2(review)
	summary.TotalInputVat = money.Round2(claimable + partial + notClaimable + review)
	// Only the claimable buckets offset output VAT. Negative means credit.
	summary.VatPayable = money.Round2(outputVat - (claimable + partial))
	return summary, warnings
}

// DeriveOverallStatus rolls up line-level claimability for a purchase
// invoice. A single REVIEW_REQUIRED line dominates regardless of the rest;
// uniform lines keep their status; any other mix is PARTIALLY_CLAIMABLE.
func DeriveOverallStatus(lines []PurchaseInvoiceLineItem) ClaimableStatus {
	if len(lines) == 0 {
		return NotClaimable
	}
	allClaimable := true
	allNotClaimable := true
	for _, li := range lines {
		if li.ClaimableStatus == ReviewRequired {
			return ReviewRequired
		}
		if li.ClaimableStatus != Claimable {
			allClaimable = false
		}
		if li.ClaimableStatus != NotClaimable {
			allNotClaimable = false
		}
	}
	switch {
	case allClaimable:
		return Claimable
	case allNotClaimable:
		return NotClaimable
	default:
		return PartiallyClaimable
	}
}
