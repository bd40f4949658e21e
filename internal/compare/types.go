package compare

import (
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                  `json:"scenarioName"`
	Description  string                  `json:"description"`
	Summary      *domain.ScenarioSummary `json:"-"`

	// Key Metrics
	RRSPContribution decimal.Decimal `json:"rrspContribution"`
	TFSAContribution decimal.Decimal `json:"tfsaContribution"`
	TaxSaved         decimal.Decimal `json:"taxSaved"`
	BenefitGain      decimal.Decimal `json:"benefitGain"`
	TotalGain        decimal.Decimal `json:"totalGain"`
	AverageRate      decimal.Decimal `json:"averageRate"`
	MarginalAfter    decimal.Decimal `json:"marginalAfter"`
	ProjectionYears  int             `json:"projectionYears"`
	FinalRRSPNet     decimal.Decimal `json:"finalRrspNet"`
	FinalTFSA        decimal.Decimal `json:"finalTfsa"`
	FinalWealth      decimal.Decimal `json:"finalWealth"`

	// Comparison to Base
	GainDiffFromBase   decimal.Decimal `json:"gainDiffFromBase"`
	TaxDiffFromBase    decimal.Decimal `json:"taxDiffFromBase"`
	WealthDiffFromBase decimal.Decimal `json:"wealthDiffFromBase"`
	WealthPctFromBase  decimal.Decimal `json:"wealthPctFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToScenarioResults converts a ComparisonSet into scenario results so the
// report formatters can render it.
func (cs *ComparisonSet) ToScenarioResults(taxYear int, household domain.Household) *domain.ScenarioResults {
	scenarios := make([]domain.ScenarioSummary, 0, len(cs.AlternativeResults)+1)

	if cs.BaseResult != nil && cs.BaseResult.Summary != nil {
		scenarios = append(scenarios, *cs.BaseResult.Summary)
	}
	for _, result := range cs.AlternativeResults {
		if result.Summary != nil {
			scenarios = append(scenarios, *result.Summary)
		}
	}

	return &domain.ScenarioResults{
		TaxYear:   taxYear,
		Household: household,
		Scenarios: scenarios,
	}
}

// MetricsCalculator extracts key metrics from scenario summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a scenario summary
func (mc *MetricsCalculator) CalculateMetrics(summary *domain.ScenarioSummary) ComparisonResult {
	benefits := summary.FamilyAllowance.TotalGain.Add(summary.Credits.TotalGain)
	result := ComparisonResult{
		ScenarioName:     summary.Name,
		Summary:          summary,
		RRSPContribution: summary.RRSPContribution,
		TFSAContribution: summary.TFSAContribution,
		TaxSaved:         summary.TaxSaved,
		BenefitGain:      benefits,
		TotalGain:        summary.TaxSaved.Add(benefits),
		AverageRate:      summary.AverageDeductionRate,
		MarginalAfter:    summary.MarginalAfter,
	}

	if n := len(summary.Projection); n > 0 {
		last := summary.Projection[n-1]
		result.ProjectionYears = last.Year
		result.FinalRRSPNet = last.RRSPNet
		result.FinalTFSA = last.TFSA
		result.FinalWealth = last.RRSPNet.Add(last.TFSANet)
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.GainDiffFromBase = scenario.TotalGain.Sub(base.TotalGain)
	scenario.TaxDiffFromBase = scenario.TaxSaved.Sub(base.TaxSaved)
	scenario.WealthDiffFromBase = scenario.FinalWealth.Sub(base.FinalWealth)

	if !base.FinalWealth.IsZero() {
		scenario.WealthPctFromBase = scenario.WealthDiffFromBase.
			Div(base.FinalWealth).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Largest first-year gain
	bestGain := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalGain.GreaterThan(bestGain.TotalGain) {
			bestGain = alt
		}
	}

	if bestGain != compSet.BaseResult {
		diff := bestGain.TotalGain.Sub(compSet.BaseResult.TotalGain)
		recommendations = append(recommendations,
			"Best Refund: "+bestGain.ScenarioName+" returns "+money.FormatMoney(diff)+
				" more this year than the base scenario")
	}

	// Largest after-tax wealth at the horizon
	bestWealth := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalWealth.GreaterThan(bestWealth.FinalWealth) {
			bestWealth = alt
		}
	}

	if bestWealth != compSet.BaseResult {
		diff := bestWealth.FinalWealth.Sub(compSet.BaseResult.FinalWealth)
		recommendations = append(recommendations,
			"Best Long Term: "+bestWealth.ScenarioName+" ends "+
				fmt.Sprintf("%d years out with %s more after tax", bestWealth.ProjectionYears, money.FormatMoney(diff)))
	}

	// Best refund per RRSP dollar
	bestRate := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AverageRate.GreaterThan(bestRate.AverageRate) {
			bestRate = alt
		}
	}

	if bestRate != compSet.BaseResult {
		recommendations = append(recommendations,
			"Most Efficient: "+bestRate.ScenarioName+" saves "+money.FormatPercent(bestRate.AverageRate)+
				" of each RRSP dollar")
	}

	return recommendations
}
