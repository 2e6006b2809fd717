// Package cart implements the flat-rate VAT calculator used by the product
// picker: per-line VAT math and cart-level aggregation.
package cart

import "github.com/vatlens/vatlens/internal/money"

// Product is a catalogue entry the cart quotes against.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"basePrice"`
	VatRate     float64 `json:"vatRate"`
	Description string  `json:"description"`
}

// Item pairs a product with a quantity.
type Item struct {
	Product  Product `json:"product"`
	Quantity float64 `json:"quantity"`
}

// Totals holds the aggregated cart amounts, rounded to two decimals.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	VatAmount float64 `json:"vatAmount"`
	Total     float64 `json:"total"`
}

// ItemVAT computes the VAT portion for one line.
func ItemVAT(basePrice, quantity, vatRate float64) float64 {
	return basePrice * quantity * (vatRate / 100)
}

// ItemSubtotal computes the net amount for one line.
func ItemSubtotal(basePrice, quantity float64) float64 {
	return basePrice * quantity
}

// ItemTotal computes the gross amount for one line.
func ItemTotal(basePrice, quantity, vatRate float64) float64 {
	return ItemSubtotal(basePrice, quantity) + ItemVAT(basePrice, quantity, vatRate)
}

// ComputeTotals sums the cart. Per-item values stay un-rounded during
// accumulation; only the three outputs are rounded, independently, at the
// end. An empty cart yields zeroes.
func ComputeTotals(items []Item) Totals {
	var subtotal, vatAmount float64
	for _, it := range items {
		subtotal += ItemSubtotal(it.Product.BasePrice, it.Quantity)
		vatAmount += ItemVAT(it.Product.BasePrice, it.Quantity, it.Product.VatRate)
	}
	return Totals{
		Subtotal:  money.Round2(subtotal),
		VatAmount: money.Round2(vatAmount),
		Total:     money.Round2(subtotal + vatAmount),
	}
}
