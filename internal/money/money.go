// Package money holds the currency rounding and formatting primitives shared
// by the VAT engine and the cart calculator.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the BCP 47 tag used when no locale is supplied.
const DefaultLocale = "en-NG"

// DefaultCurrency is the ISO 4217 code used when no currency is supplied.
const DefaultCurrency = "NGN"

var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

var defaultPrinter = message.NewPrinter(language.MustParse(DefaultLocale))

// Round2 rounds to two decimal places, half away from zero. Scaling to minor
// units before rounding keeps repeated additions from drifting.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// FormatCurrency renders an amount in the default Naira convention, e.g.
// "₦1,234.56".
func FormatCurrency(amount float64) string {
	return format(defaultPrinter, DefaultCurrency, amount)
}

// FormatCurrencyIn renders an amount with locale-aware grouping and the
// symbol for the given ISO currency code. Unknown codes fall back to the code
// itself as prefix.
func FormatCurrencyIn(amount float64, locale, currency string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return format(message.NewPrinter(tag), currency, amount)
}

func format(p *message.Printer, currency string, amount float64) string {
	// NaN and infinities render as an explicit placeholder instead of
	// whatever the number formatter would emit.
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "—"
	}
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency + " "
	}
	return p.Sprintf("%s%v", symbol, number.Decimal(amount, number.Scale(2)))
}
