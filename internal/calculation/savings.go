package calculation

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SpreadSavings deducts a contribution in equal shares over several tax
// years at the same income, limited each year by room/years. With zero years
// the whole contribution is deducted in a single year.
func (ce *CalculationEngine) SpreadSavings(income, contribution, room decimal.Decimal, years int) domain.SpreadComparison {
	perYear := contribution
	if years > 0 {
		n := decimal.NewFromInt(int64(years))
		perYear = decimal.Min(contribution.Div(n), room.Div(n))
	}
	perYear = decimal.Max(decimal.Zero, perYear)

	span := years
	if span < 1 {
		span = 1
	}

	result := domain.SpreadComparison{Years: make([]domain.YearSavings, 0, span)}
	remaining := contribution
	for y := 1; y <= span; y++ {
		thisYear := decimal.Max(decimal.Zero, decimal.Min(perYear, remaining))
		remaining = remaining.Sub(thisYear)

		saved := ce.TaxCalc.CalculateTaxSavings(income, thisYear)
		avg := decimal.Zero
		if thisYear.IsPositive() {
			avg = saved.Div(thisYear)
		}
		result.Years = append(result.Years, domain.YearSavings{
			Year:         y,
			Contribution: thisYear,
			Saved:        saved,
			AverageRate:  avg,
		})
		result.TotalSaved = result.TotalSaved.Add(saved)
	}

	result.OneShotSaved = ce.TaxCalc.CalculateTaxSavings(income, contribution)
	result.Difference = result.TotalSaved.Sub(result.OneShotSaved)
	result.SpreadIsBetter = result.TotalSaved.GreaterThan(result.OneShotSaved)
	return result
}
