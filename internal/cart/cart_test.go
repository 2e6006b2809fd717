package cart

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestItemVAT(t *testing.T) {
	require.Equal(t, 20.0, ItemVAT(100, 1, 20))
	require.Equal(t, 60.0, ItemVAT(100, 3, 20))
	require.Equal(t, 0.0, ItemVAT(100, 1, 0))
	require.InDelta(t, 19.998, ItemVAT(99.99, 1, 20), 0.001)
}

func TestItemSubtotal(t *testing.T) {
	require.Equal(t, 200.0, ItemSubtotal(100, 2))
	require.Equal(t, 49.99, ItemSubtotal(49.99, 1))
}

func TestItemTotal(t *testing.T) {
	require.Equal(t, 120.0, ItemTotal(100, 1, 20))
	require.Equal(t, 120.0, ItemTotal(50, 2, 20))
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	totals := ComputeTotals(nil)
	require.Equal(t, Totals{Subtotal: 0, VatAmount: 0, Total: 0}, totals)
}

func TestComputeTotalsMixedRates(t *testing.T) {
	items := []Item{
		{Product: Product{ID: "1", Name: "Product A", BasePrice: 100, VatRate: 20}, Quantity: 2},
		{Product: Product{ID: "2", Name: "Product B", BasePrice: 50, VatRate: 10}, Quantity: 1},
	}
	totals := ComputeTotals(items)
	require.Equal(t, 250.0, totals.Subtotal)
	require.Equal(t, 45.0, totals.VatAmount)
	require.Equal(t, 295.0, totals.Total)
}

func TestComputeTotalsRoundsAtBoundary(t *testing.T) {
	items := []Item{
		{Product: Product{ID: "1", Name: "Consulting", BasePrice: 33.33, VatRate: 20}, Quantity: 1},
	}
	totals := ComputeTotals(items)
	require.Equal(t, 33.33, totals.Subtotal)
	require.Equal(t, 6.67, totals.VatAmount)
	require.Equal(t, 40.0, totals.Total)
}

func TestComputeTotalsOrderIndependent(t *testing.T) {
	a := Item{Product: Product{ID: "1", BasePrice: 33.33, VatRate: 20}, Quantity: 1}
	b := Item{Product: Product{ID: "2", BasePrice: 12.49, VatRate: 7.5}, Quantity: 3}
	c := Item{Product: Product{ID: "3", BasePrice: 0.07, VatRate: 20}, Quantity: 11}

	forward := ComputeTotals([]Item{a, b, c})
	reverse := ComputeTotals([]Item{c, b, a})
	require.Equal(t, forward, reverse)
}
