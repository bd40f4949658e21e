package domain

import "github.com/shopspring/decimal"

// BenefitImpact is a benefit evaluated with and without a deduction
type BenefitImpact struct {
	Name   string          `json:"name"`
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
	Gain   decimal.Decimal `json:"gain"`
}

// Applicable reports whether the benefit is paid in either case
func (b BenefitImpact) Applicable() bool {
	return !b.Before.IsZero() || !b.After.IsZero()
}

// NewBenefitImpact builds an impact with Gain = After - Before
func NewBenefitImpact(name string, before, after decimal.Decimal) BenefitImpact {
	return BenefitImpact{Name: name, Before: before, After: after, Gain: after.Sub(before)}
}

// FamilyAllowanceImpact groups the federal child benefit and the Quebec
// family allowance
type FamilyAllowanceImpact struct {
	ChildBenefit    BenefitImpact   `json:"childBenefit"`
	FamilyAllowance BenefitImpact   `json:"familyAllowance"`
	TotalGain       decimal.Decimal `json:"totalGain"`
}

// CreditsImpact groups the income-tested credits and in-work benefits
type CreditsImpact struct {
	Credits   []BenefitImpact `json:"credits"`
	TotalGain decimal.Decimal `json:"totalGain"`
}
