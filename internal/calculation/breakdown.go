package calculation

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// BracketBreakdown merges the federal and provincial schedules into combined
// marginal-rate zones below income, and reports how much of the deduction
// falls into each zone. The zones feed the bracket bar display.
func (ctc *ComprehensiveTaxCalculator) BracketBreakdown(income, deduction decimal.Decimal) []domain.CombinedBracket {
	before := income
	after := income.Sub(deduction)

	points := ctc.combinedBreakpoints()
	zones := make([]domain.CombinedBracket, 0, len(points))

	for i := 0; i < len(points)-1; i++ {
		low, high := points[i], points[i+1]
		if high.LessThanOrEqual(decimal.Zero) {
			continue
		}

		rate := ctc.FederalTaxCalc.RateAt(low).Add(ctc.ProvincialTaxCalc.RateAt(low))
		if !rate.IsPositive() || !low.LessThan(before) {
			continue
		}

		zones = append(zones, domain.CombinedBracket{
			Min:      low,
			Max:      decimal.Min(high, domain.UnboundedIncome),
			Rate:     rate,
			InRange:  low.LessThan(before) && high.GreaterThan(after),
			Deducted: deductedInZone(low, high, before, after),
		})
	}

	return zones
}

// deductedInZone returns the part of [after, before) attributed to the zone
// [low, high). Only the first matching case applies.
func deductedInZone(low, high, before, after decimal.Decimal) decimal.Decimal {
	switch {
	case low.GreaterThanOrEqual(after) && high.LessThanOrEqual(before):
		return high.Sub(low)
	case low.LessThan(after) && high.GreaterThan(after):
		return high.Sub(after)
	case low.LessThan(before) && high.GreaterThan(before):
		return before.Sub(low)
	case low.GreaterThanOrEqual(after) && low.LessThan(before):
		return decimal.Min(high, before).Sub(decimal.Max(low, after))
	default:
		return decimal.Zero
	}
}
