package domain

import "github.com/shopspring/decimal"

// ProjectionYear holds both savings balances at the end of a year
type ProjectionYear struct {
	Year    int             `json:"year"`
	RRSP    decimal.Decimal `json:"rrsp"`
	TFSA    decimal.Decimal `json:"tfsa"`
	RRSPNet decimal.Decimal `json:"rrspNet"`
	TFSANet decimal.Decimal `json:"tfsaNet"`
}

// YearSavings is the refund produced by one year's share of a deduction
type YearSavings struct {
	Year         int             `json:"year"`
	Contribution decimal.Decimal `json:"contribution"`
	Saved        decimal.Decimal `json:"saved"`
	AverageRate  decimal.Decimal `json:"averageRate"`
}

// SpreadComparison compares deducting over several years with deducting at once
type SpreadComparison struct {
	Years          []YearSavings   `json:"years"`
	TotalSaved     decimal.Decimal `json:"totalSaved"`
	OneShotSaved   decimal.Decimal `json:"oneShotSaved"`
	Difference     decimal.Decimal `json:"difference"`
	SpreadIsBetter bool            `json:"spreadIsBetter"`
}

// OptimalSplit is the recommended division of a savings budget
type OptimalSplit struct {
	RecommendedRRSP decimal.Decimal `json:"recommendedRrsp"`
	RecommendedTFSA decimal.Decimal `json:"recommendedTfsa"`
	Justification   string          `json:"justification"`
	TaxSaved        decimal.Decimal `json:"taxSaved"`
	// TargetThreshold is zero when income is below every target
	TargetThreshold decimal.Decimal `json:"targetThreshold"`
	TargetRate      decimal.Decimal `json:"targetRate"`
}

// ScenarioSummary is everything computed for one scenario
type ScenarioSummary struct {
	Name                 string                `json:"name"`
	TotalIncome          decimal.Decimal       `json:"totalIncome"`
	IncomeAfterDeduction decimal.Decimal       `json:"incomeAfterDeduction"`
	TaxBefore            decimal.Decimal       `json:"taxBefore"`
	TaxAfter             decimal.Decimal       `json:"taxAfter"`
	TaxSaved             decimal.Decimal       `json:"taxSaved"`
	MarginalBefore       decimal.Decimal       `json:"marginalBefore"`
	MarginalAfter        decimal.Decimal       `json:"marginalAfter"`
	AverageDeductionRate decimal.Decimal       `json:"averageDeductionRate"`
	Brackets             []CombinedBracket     `json:"brackets"`
	Projection           []ProjectionYear      `json:"projection"`
	Split                OptimalSplit          `json:"optimalSplit"`
	Spread               SpreadComparison      `json:"spread"`
	FamilyAllowance      FamilyAllowanceImpact `json:"familyAllowance"`
	Credits              CreditsImpact         `json:"credits"`
	RRSPContribution     decimal.Decimal       `json:"rrspContribution"`
	TFSAContribution     decimal.Decimal       `json:"tfsaContribution"`
}

// ScenarioResults collects the summaries of every scenario in a configuration
type ScenarioResults struct {
	TaxYear     int               `json:"taxYear"`
	Household   Household         `json:"household"`
	Scenarios   []ScenarioSummary `json:"scenarios"`
	Assumptions []string          `json:"assumptions,omitempty"`
}
