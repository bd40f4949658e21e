package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// OptimalSplit divides a savings budget between the RRSP and the TFSA.
//
// The targets are scanned from the highest threshold down. At the first one
// income exceeds, the RRSP gets just enough to bring income down to it,
// limited by the budget and the RRSP room; the TFSA takes what is left up to
// its own room. This is a single greedy pass: when the RRSP room binds first
// it does not look at lower thresholds.
func (ce *CalculationEngine) OptimalSplit(income, budget, rrspRoom, tfsaRoom decimal.Decimal) domain.OptimalSplit {
	budget = decimal.Max(decimal.Zero, budget)
	rrspRoom = decimal.Max(decimal.Zero, rrspRoom)
	tfsaRoom = decimal.Max(decimal.Zero, tfsaRoom)

	result := domain.OptimalSplit{Justification: "Income is below every target threshold"}
	for _, target := range ce.Rules.SplitTargets {
		if income.GreaterThan(target.Threshold) {
			toDeduct := income.Sub(target.Threshold)
			result.RecommendedRRSP = decimal.Min(toDeduct, decimal.Min(budget, rrspRoom))
			result.TargetThreshold = target.Threshold
			result.TargetRate = target.Rate
			result.Justification = fmt.Sprintf("Bring income below %s (%s bracket)",
				money.FormatMoney(target.Threshold), money.FormatPercent(target.Rate))
			break
		}
	}

	result.RecommendedTFSA = decimal.Min(budget.Sub(result.RecommendedRRSP), tfsaRoom)
	result.TaxSaved = ce.TaxCalc.CalculateTaxSavings(income, result.RecommendedRRSP)

	ce.Logger.Debugf("optimal split for income %s: rrsp=%s tfsa=%s target=%s",
		income.StringFixed(2), result.RecommendedRRSP.StringFixed(2),
		result.RecommendedTFSA.StringFixed(2), result.TargetThreshold.String())
	return result
}
