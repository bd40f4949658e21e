package output

import (
	"strconv"

	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount as whole dollars, fr-CA style
func FormatCurrency(amount decimal.Decimal) string { return money.FormatMoney(amount) }

// FormatSignedCurrency is FormatCurrency with an explicit "+" on gains
func FormatSignedCurrency(amount decimal.Decimal) string { return money.FormatSignedMoney(amount) }

// FormatPercentage formats a rate (0.4571) as "45.7 %"
func FormatPercentage(rate decimal.Decimal) string { return money.FormatPercent(rate) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
