package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRound2(t *testing.T) {
	require.Equal(t, 6.67, Round2(33.33*0.20))
	require.Equal(t, 0.0, Round2(0))
	// Half-away-from-zero on exactly representable half points. Literals
	// like 1.005 sit just below the half in float64 and round down.
	require.Equal(t, 0.13, Round2(0.125))
	require.Equal(t, -0.13, Round2(-0.125))
	require.Equal(t, 2.38, Round2(2.375))
	require.Equal(t, 1.0, Round2(1.005))
	require.Equal(t, 40.00, Round2(33.33+6.67))
}

func TestRound2EndRoundingAvoidsDrift(t *testing.T) {
	// Summing first, rounding once: the boundary policy everywhere else.
	parts := []float64{33.33, 6.67}
	var sum float64
	for _, p := range parts {
		sum += p
	}
	require.Equal(t, 40.00, Round2(sum))
}

func TestFormatCurrency(t *testing.T) {
	require.Equal(t, "₦1,234.56", FormatCurrency(1234.56))
	require.Equal(t, "₦0.00", FormatCurrency(0))
	require.Equal(t, "₦1,000,000.00", FormatCurrency(1000000))
}

func TestFormatCurrencyGuardsNonFinite(t *testing.T) {
	require.Equal(t, "—", FormatCurrency(math.NaN()))
	require.Equal(t, "—", FormatCurrency(math.Inf(1)))
	require.Equal(t, "—", FormatCurrency(math.Inf(-1)))
}

func TestFormatCurrencyIn(t *testing.T) {
	require.Equal(t, "$99.90", FormatCurrencyIn(99.9, "en-US", "USD"))
	// Unknown code falls back to the code as prefix.
	require.Equal(t, "XOF 15.00", FormatCurrencyIn(15, "en-NG", "XOF"))
}
