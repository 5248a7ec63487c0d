// Package money holds the display-side helpers for payout amounts:
// half-up rounding and localized currency formatting. The engine only
// uses Round; formatting is for report and UI consumers.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Symbol prefixes every formatted amount. Payouts are single-currency;
// conversion is out of scope.
const Symbol = "₱"

var printer = message.NewPrinter(language.English)

// Round rounds v to the given number of decimal places using half-up
// rounding on the scaled value, so Round(2.5, 0) == 3 and
// Round(-2.5, 0) == -2 (matching the upstream reports).
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Floor(v*p+0.5) / p
}

// Format renders an amount as a whole-unit currency string with
// grouping separators, e.g. "₱12,345".
func Format(v float64) string {
	return printer.Sprintf("%s%v", Symbol,
		number.Decimal(Round(v, 0), number.MaxFractionDigits(0)))
}

// FormatCents renders an amount with exactly two decimal places, e.g.
// "₱12,345.50".
func FormatCents(v float64) string {
	return printer.Sprintf("%s%v", Symbol,
		number.Decimal(Round(v, 2),
			number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
