package output

import (
	"sort"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName string
	TaxSaved     decimal.Decimal
	BenefitGain  decimal.Decimal
	TotalGain    decimal.Decimal
	// GainPerDollar is TotalGain over the RRSP contribution
	GainPerDollar decimal.Decimal
}

// TotalGain is the first-year cash effect of a scenario: the tax refund plus
// every benefit and credit it unlocks.
func TotalGain(sc domain.ScenarioSummary) decimal.Decimal {
	return sc.TaxSaved.Add(sc.FamilyAllowance.TotalGain).Add(sc.Credits.TotalGain)
}

// AnalyzeScenarios picks the scenario with the largest total first-year gain.
// Ties keep the earlier scenario.
func AnalyzeScenarios(results *domain.ScenarioResults) Recommendation {
	if results == nil || len(results.Scenarios) == 0 {
		return Recommendation{}
	}

	ranks := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(ranks, func(i, j int) bool { return TotalGain(ranks[i]).GreaterThan(TotalGain(ranks[j])) })

	best := ranks[0]
	benefits := best.FamilyAllowance.TotalGain.Add(best.Credits.TotalGain)
	perDollar := decimal.Zero
	if best.RRSPContribution.IsPositive() {
		perDollar = TotalGain(best).Div(best.RRSPContribution)
	}
	return Recommendation{
		ScenarioName:  best.Name,
		TaxSaved:      best.TaxSaved,
		BenefitGain:   benefits,
		TotalGain:     TotalGain(best),
		GainPerDollar: perDollar,
	}
}
