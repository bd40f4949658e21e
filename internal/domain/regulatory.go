package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRules contains every regulatory constant the engine reads. It is loaded
// from the built-in defaults or a rules.yaml override and never mutated.
type TaxRules struct {
	Metadata         RulesMetadata         `yaml:"metadata" json:"metadata"`
	Federal          BracketTable          `yaml:"federal" json:"federal"`
	FederalAbatement decimal.Decimal       `yaml:"federal_abatement" json:"federal_abatement"`
	Provincial       BracketTable          `yaml:"provincial" json:"provincial"`
	Projection       ProjectionAssumptions `yaml:"projection" json:"projection"`
	SplitTargets     []SplitTarget         `yaml:"split_targets" json:"split_targets"`
	ChildBenefit     ChildBenefitRules     `yaml:"child_benefit" json:"child_benefit"`
	FamilyAllowance  FamilyAllowanceRules  `yaml:"family_allowance" json:"family_allowance"`
	SalesTaxCredit   SalesTaxCreditRules   `yaml:"sales_tax_credit" json:"sales_tax_credit"`
	SolidarityCredit SolidarityCreditRules `yaml:"solidarity_credit" json:"solidarity_credit"`
	WorkersBenefit   PhasedBenefitSchedule `yaml:"workers_benefit" json:"workers_benefit"`
	WorkPremium      PhasedBenefitSchedule `yaml:"work_premium" json:"work_premium"`
}

// RulesMetadata describes the rule set
type RulesMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	Description string `yaml:"description" json:"description"`
}

// ProjectionAssumptions holds the fixed growth and withdrawal assumptions
type ProjectionAssumptions struct {
	AnnualReturn      decimal.Decimal `yaml:"annual_return" json:"annual_return"`
	WithdrawalTaxRate decimal.Decimal `yaml:"withdrawal_tax_rate" json:"withdrawal_tax_rate"`
	DefaultYears      int             `yaml:"default_years" json:"default_years"`
}

// SplitTarget is an income threshold the split heuristic tries to get under.
// Rate is the nominal combined marginal rate above it, used for display only.
type SplitTarget struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// RatePair holds the two clawback rates of the child benefit
type RatePair struct {
	BelowSecond decimal.Decimal `yaml:"below_second" json:"below_second"`
	AboveSecond decimal.Decimal `yaml:"above_second" json:"above_second"`
}

// MaxClawbackChildren is the largest family size with its own rate pair.
// Larger families use the rates of this size.
const MaxClawbackChildren = 4

// ChildBenefitRules contains the federal child benefit parameters
type ChildBenefitRules struct {
	MaxUnder6  decimal.Decimal `yaml:"max_under_6" json:"max_under_6"`
	Max6To17   decimal.Decimal `yaml:"max_6_to_17" json:"max_6_to_17"`
	Threshold1 decimal.Decimal `yaml:"threshold_1" json:"threshold_1"`
	Threshold2 decimal.Decimal `yaml:"threshold_2" json:"threshold_2"`
	ClawbackBy []RatePair      `yaml:"clawback_by_children" json:"clawback_by_children"`
}

// RatesFor returns the clawback pair for a number of children, saturating at
// MaxClawbackChildren. The second return is false when no children apply.
func (r ChildBenefitRules) RatesFor(children int) (RatePair, bool) {
	if children <= 0 || len(r.ClawbackBy) == 0 {
		return RatePair{}, false
	}
	key := children
	if key > MaxClawbackChildren {
		key = MaxClawbackChildren
	}
	if key > len(r.ClawbackBy) {
		key = len(r.ClawbackBy)
	}
	return r.ClawbackBy[key-1], true
}

// FamilyAllowanceRules contains the Quebec family allowance parameters
type FamilyAllowanceRules struct {
	MaxPerChild  decimal.Decimal `yaml:"max_per_child" json:"max_per_child"`
	Threshold    decimal.Decimal `yaml:"threshold" json:"threshold"`
	ClawbackRate decimal.Decimal `yaml:"clawback_rate" json:"clawback_rate"`
}

// SalesTaxCreditRules contains the GST/HST credit parameters
type SalesTaxCreditRules struct {
	PerAdult     decimal.Decimal `yaml:"per_adult" json:"per_adult"`
	PerChild     decimal.Decimal `yaml:"per_child" json:"per_child"`
	Threshold    decimal.Decimal `yaml:"threshold" json:"threshold"`
	ClawbackRate decimal.Decimal `yaml:"clawback_rate" json:"clawback_rate"`
}

// SolidarityCreditRules contains the Quebec solidarity credit parameters.
// The housing component is only paid to renters.
type SolidarityCreditRules struct {
	QSTPerAdult     decimal.Decimal `yaml:"qst_per_adult" json:"qst_per_adult"`
	HousingSingle   decimal.Decimal `yaml:"housing_single" json:"housing_single"`
	HousingCouple   decimal.Decimal `yaml:"housing_couple" json:"housing_couple"`
	HousingPerChild decimal.Decimal `yaml:"housing_per_child" json:"housing_per_child"`
	Threshold       decimal.Decimal `yaml:"threshold" json:"threshold"`
	ClawbackRate    decimal.Decimal `yaml:"clawback_rate" json:"clawback_rate"`
}

// PhasedBenefit describes a phase-in / plateau / phase-out curve
type PhasedBenefit struct {
	PhaseInStart  decimal.Decimal `yaml:"phase_in_start" json:"phase_in_start"`
	PhaseInRate   decimal.Decimal `yaml:"phase_in_rate" json:"phase_in_rate"`
	Maximum       decimal.Decimal `yaml:"maximum" json:"maximum"`
	PhaseOutStart decimal.Decimal `yaml:"phase_out_start" json:"phase_out_start"`
	PhaseOutRate  decimal.Decimal `yaml:"phase_out_rate" json:"phase_out_rate"`
}

// PhasedBenefitSchedule selects a curve by household type
type PhasedBenefitSchedule struct {
	Single PhasedBenefit `yaml:"single" json:"single"`
	Family PhasedBenefit `yaml:"family" json:"family"`
}

// For returns the curve that applies to the household
func (s PhasedBenefitSchedule) For(couple bool) PhasedBenefit {
	if couple {
		return s.Family
	}
	return s.Single
}

func bracket(min, max int64, rate float64) TaxBracket {
	upper := UnboundedIncome
	if max > 0 {
		upper = decimal.NewFromInt(max)
	}
	return TaxBracket{Min: decimal.NewFromInt(min), Max: upper, Rate: decimal.NewFromFloat(rate)}
}

// DefaultTaxRules returns the 2024 federal and Quebec constants
func DefaultTaxRules() TaxRules {
	return TaxRules{
		Metadata: RulesMetadata{
			TaxYear:     2024,
			Description: "Federal and Quebec personal income tax, 2024",
		},
		Federal: BracketTable{
			Name:           "federal",
			PersonalAmount: decimal.NewFromInt(15705),
			Brackets: []TaxBracket{
				bracket(0, 55867, 0.15),
				bracket(55867, 111733, 0.205),
				bracket(111733, 154906, 0.26),
				bracket(154906, 220000, 0.29),
				bracket(220000, 0, 0.33),
			},
		},
		FederalAbatement: decimal.NewFromFloat(0.165),
		Provincial: BracketTable{
			Name:           "quebec",
			PersonalAmount: decimal.NewFromInt(17183),
			Brackets: []TaxBracket{
				bracket(0, 51780, 0.14),
				bracket(51780, 103545, 0.19),
				bracket(103545, 126000, 0.24),
				bracket(126000, 0, 0.2575),
			},
		},
		Projection: ProjectionAssumptions{
			AnnualReturn:      decimal.NewFromFloat(0.07),
			WithdrawalTaxRate: decimal.NewFromFloat(0.35),
			DefaultYears:      10,
		},
		SplitTargets: []SplitTarget{
			{Threshold: decimal.NewFromInt(126000), Rate: decimal.NewFromFloat(0.505)},
			{Threshold: decimal.NewFromInt(103545), Rate: decimal.NewFromFloat(0.475)},
			{Threshold: decimal.NewFromInt(55867), Rate: decimal.NewFromFloat(0.37)},
		},
		ChildBenefit: ChildBenefitRules{
			MaxUnder6:  decimal.NewFromInt(7997),
			Max6To17:   decimal.NewFromInt(6748),
			Threshold1: decimal.NewFromInt(37487),
			Threshold2: decimal.NewFromInt(81222),
			ClawbackBy: []RatePair{
				{BelowSecond: decimal.NewFromFloat(0.07), AboveSecond: decimal.NewFromFloat(0.032)},
				{BelowSecond: decimal.NewFromFloat(0.135), AboveSecond: decimal.NewFromFloat(0.057)},
				{BelowSecond: decimal.NewFromFloat(0.19), AboveSecond: decimal.NewFromFloat(0.08)},
				{BelowSecond: decimal.NewFromFloat(0.23), AboveSecond: decimal.NewFromFloat(0.095)},
			},
		},
		FamilyAllowance: FamilyAllowanceRules{
			MaxPerChild:  decimal.NewFromInt(2923),
			Threshold:    decimal.NewFromInt(59369),
			ClawbackRate: decimal.NewFromFloat(0.04),
		},
		SalesTaxCredit: SalesTaxCreditRules{
			PerAdult:     decimal.NewFromInt(519),
			PerChild:     decimal.NewFromInt(137),
			Threshold:    decimal.NewFromInt(44324),
			ClawbackRate: decimal.NewFromFloat(0.05),
		},
		SolidarityCredit: SolidarityCreditRules{
			QSTPerAdult:     decimal.NewFromInt(346),
			HousingSingle:   decimal.NewFromInt(361),
			HousingCouple:   decimal.NewFromInt(446),
			HousingPerChild: decimal.NewFromInt(126),
			Threshold:       decimal.NewFromInt(41150),
			ClawbackRate:    decimal.NewFromFloat(0.06),
		},
		WorkersBenefit: PhasedBenefitSchedule{
			Single: PhasedBenefit{
				PhaseInStart:  decimal.NewFromInt(3000),
				PhaseInRate:   decimal.NewFromFloat(0.27),
				Maximum:       decimal.NewFromInt(1590),
				PhaseOutStart: decimal.NewFromInt(24975),
				PhaseOutRate:  decimal.NewFromFloat(0.15),
			},
			Family: PhasedBenefit{
				PhaseInStart:  decimal.NewFromInt(3000),
				PhaseInRate:   decimal.NewFromFloat(0.27),
				Maximum:       decimal.NewFromInt(2739),
				PhaseOutStart: decimal.NewFromInt(28494),
				PhaseOutRate:  decimal.NewFromFloat(0.15),
			},
		},
		WorkPremium: PhasedBenefitSchedule{
			Single: PhasedBenefit{
				PhaseInStart:  decimal.NewFromInt(2400),
				PhaseInRate:   decimal.NewFromFloat(0.09),
				Maximum:       decimal.NewFromFloat(893.25),
				PhaseOutStart: decimal.NewFromInt(12325),
				PhaseOutRate:  decimal.NewFromFloat(0.10),
			},
			Family: PhasedBenefit{
				PhaseInStart:  decimal.NewFromInt(3600),
				PhaseInRate:   decimal.NewFromFloat(0.12),
				Maximum:       decimal.NewFromFloat(1856.16),
				PhaseOutStart: decimal.NewFromInt(19068),
				PhaseOutRate:  decimal.NewFromFloat(0.10),
			},
		},
	}
}
