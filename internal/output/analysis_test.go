package output

import (
	"testing"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func summary(name string, contribution, saved, benefits int64) domain.ScenarioSummary {
	return domain.ScenarioSummary{
		Name:             name,
		RRSPContribution: decimal.NewFromInt(contribution),
		TaxSaved:         decimal.NewFromInt(saved),
		Credits:          domain.CreditsImpact{TotalGain: decimal.NewFromInt(benefits)},
	}
}

func TestAnalyzeScenarios(t *testing.T) {
	results := &domain.ScenarioResults{Scenarios: []domain.ScenarioSummary{
		summary("refund only", 10000, 4000, 0),
		summary("with benefits", 10000, 3500, 1000),
		summary("nothing", 0, 0, 0),
	}}

	rec := AnalyzeScenarios(results)
	assert.Equal(t, "with benefits", rec.ScenarioName)
	assert.True(t, rec.TotalGain.Equal(decimal.NewFromInt(4500)))
	assert.True(t, rec.BenefitGain.Equal(decimal.NewFromInt(1000)))
	assert.True(t, rec.GainPerDollar.Equal(decimal.RequireFromString("0.45")))
}

func TestAnalyzeScenarios_TieKeepsFirst(t *testing.T) {
	results := &domain.ScenarioResults{Scenarios: []domain.ScenarioSummary{
		summary("first", 1000, 400, 0),
		summary("second", 1000, 400, 0),
	}}
	assert.Equal(t, "first", AnalyzeScenarios(results).ScenarioName)
}

func TestAnalyzeScenarios_Empty(t *testing.T) {
	assert.Equal(t, Recommendation{}, AnalyzeScenarios(nil))
	assert.Equal(t, Recommendation{}, AnalyzeScenarios(&domain.ScenarioResults{}))
}

func TestFormatZoneMax(t *testing.T) {
	assert.Equal(t, "and up", FormatZoneMax(domain.UnboundedIncome))
	assert.NotEqual(t, "and up", FormatZoneMax(decimal.NewFromInt(68963)))
}

func TestProjectionMilestones(t *testing.T) {
	data := make([]domain.ProjectionYear, 13)
	for i := range data {
		data[i].Year = i
	}
	milestones := projectionMilestones(data)

	years := make([]int, 0, len(milestones))
	for _, m := range milestones {
		years = append(years, m.Year)
	}
	assert.Equal(t, []int{1, 5, 10, 12}, years)
}
