// Package money renders amounts and rates for display. It is a thin
// presentation adapter; the engine never depends on its output.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	hundred = decimal.NewFromInt(100)
	printer = message.NewPrinter(language.CanadianFrench)
)

// FormatMoney formats an amount as whole Canadian dollars the way fr-CA
// writes them, e.g. "137 500 $"
func FormatMoney(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	return printer.Sprintf("%d", whole) + " $"
}

// FormatSignedMoney prefixes positive amounts with "+"
func FormatSignedMoney(amount decimal.Decimal) string {
	if amount.Round(0).IsPositive() {
		return "+" + FormatMoney(amount)
	}
	return FormatMoney(amount)
}

// FormatPercent formats a rate with one decimal, e.g. 0.4571 -> "45.7 %"
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(1) + " %"
}
