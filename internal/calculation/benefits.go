package calculation

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Benefit program names used in impact reports
const (
	ChildBenefitName     = "Canada Child Benefit"
	FamilyAllowanceName  = "Quebec Family Allowance"
	SalesTaxCreditName   = "GST/HST Credit"
	SolidarityCreditName = "Quebec Solidarity Tax Credit"
	WorkersBenefitName   = "Canada Workers Benefit"
	WorkPremiumName      = "Quebec Work Premium"
)

// BenefitCalculator evaluates the income-tested benefits and credits. Every
// method is a pure function of its arguments and the rules.
type BenefitCalculator struct {
	Rules domain.TaxRules
}

// NewBenefitCalculator creates a benefit calculator
func NewBenefitCalculator(rules domain.TaxRules) *BenefitCalculator {
	return &BenefitCalculator{Rules: rules}
}

// clawback reduces maximum by rate for every dollar above threshold, floored at zero
func clawback(maximum, income, threshold, rate decimal.Decimal) decimal.Decimal {
	excess := decimal.Max(decimal.Zero, income.Sub(threshold))
	return decimal.Max(decimal.Zero, maximum.Sub(excess.Mul(rate)))
}

// phased evaluates a phase-in / plateau / phase-out curve. The phase-in is
// driven by work income and the phase-out by family income.
func phased(curve domain.PhasedBenefit, workIncome, familyIncome decimal.Decimal) decimal.Decimal {
	if workIncome.LessThanOrEqual(curve.PhaseInStart) {
		return decimal.Zero
	}
	earned := decimal.Min(curve.Maximum, workIncome.Sub(curve.PhaseInStart).Mul(curve.PhaseInRate))
	return clawback(earned, familyIncome, curve.PhaseOutStart, curve.PhaseOutRate)
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ChildBenefit returns the annual Canada Child Benefit. Two clawback rates
// apply: one between the thresholds and one above the second threshold,
// chosen by family size.
func (bc *BenefitCalculator) ChildBenefit(familyIncome decimal.Decimal, childrenUnder6, children6To17 int) decimal.Decimal {
	childrenUnder6 = nonNegative(childrenUnder6)
	children6To17 = nonNegative(children6To17)

	rules := bc.Rules.ChildBenefit
	rates, ok := rules.RatesFor(childrenUnder6 + children6To17)
	if !ok {
		return decimal.Zero
	}

	maxBenefit := rules.MaxUnder6.Mul(decimal.NewFromInt(int64(childrenUnder6))).
		Add(rules.Max6To17.Mul(decimal.NewFromInt(int64(children6To17))))

	var reduction decimal.Decimal
	if familyIncome.GreaterThan(rules.Threshold1) {
		excess := decimal.Min(familyIncome, rules.Threshold2).Sub(rules.Threshold1)
		reduction = reduction.Add(excess.Mul(rates.BelowSecond))
	}
	if familyIncome.GreaterThan(rules.Threshold2) {
		reduction = reduction.Add(familyIncome.Sub(rules.Threshold2).Mul(rates.AboveSecond))
	}

	return decimal.Max(decimal.Zero, maxBenefit.Sub(reduction))
}

// FamilyAllowance returns the Quebec family allowance
func (bc *BenefitCalculator) FamilyAllowance(familyIncome decimal.Decimal, children int) decimal.Decimal {
	children = nonNegative(children)
	if children == 0 {
		return decimal.Zero
	}
	rules := bc.Rules.FamilyAllowance
	maxBenefit := rules.MaxPerChild.Mul(decimal.NewFromInt(int64(children)))
	return clawback(maxBenefit, familyIncome, rules.Threshold, rules.ClawbackRate)
}

// SalesTaxCredit returns the GST/HST credit
func (bc *BenefitCalculator) SalesTaxCredit(familyIncome decimal.Decimal, couple bool, children int) decimal.Decimal {
	rules := bc.Rules.SalesTaxCredit
	maxBenefit := rules.PerAdult.Mul(adults(couple)).
		Add(rules.PerChild.Mul(decimal.NewFromInt(int64(nonNegative(children)))))
	return clawback(maxBenefit, familyIncome, rules.Threshold, rules.ClawbackRate)
}

// SolidarityCredit returns the Quebec solidarity tax credit. Owners get the
// QST component only.
func (bc *BenefitCalculator) SolidarityCredit(familyIncome decimal.Decimal, couple, renter bool, children int) decimal.Decimal {
	rules := bc.Rules.SolidarityCredit
	maxBenefit := rules.QSTPerAdult.Mul(adults(couple))
	if renter {
		housing := rules.HousingSingle
		if couple {
			housing = rules.HousingCouple
		}
		housing = housing.Add(rules.HousingPerChild.Mul(decimal.NewFromInt(int64(nonNegative(children)))))
		maxBenefit = maxBenefit.Add(housing)
	}
	return clawback(maxBenefit, familyIncome, rules.Threshold, rules.ClawbackRate)
}

// WorkersBenefit returns the Canada Workers Benefit
func (bc *BenefitCalculator) WorkersBenefit(workIncome, familyIncome decimal.Decimal, couple bool) decimal.Decimal {
	return phased(bc.Rules.WorkersBenefit.For(couple), workIncome, familyIncome)
}

// WorkPremium returns the Quebec work premium
func (bc *BenefitCalculator) WorkPremium(workIncome, familyIncome decimal.Decimal, couple bool) decimal.Decimal {
	return phased(bc.Rules.WorkPremium.For(couple), workIncome, familyIncome)
}

func adults(couple bool) decimal.Decimal {
	if couple {
		return decimal.NewFromInt(2)
	}
	return one
}

// FamilyAllowanceImpact evaluates the child benefit and the family allowance
// at family income and at family income less the deduction
func (bc *BenefitCalculator) FamilyAllowanceImpact(familyIncome, deduction decimal.Decimal, childrenUnder6, children6To17 int) domain.FamilyAllowanceImpact {
	children := nonNegative(childrenUnder6) + nonNegative(children6To17)
	incomeAfter := familyIncome.Sub(deduction)

	ccb := domain.NewBenefitImpact(ChildBenefitName,
		bc.ChildBenefit(familyIncome, childrenUnder6, children6To17),
		bc.ChildBenefit(incomeAfter, childrenUnder6, children6To17))
	fa := domain.NewBenefitImpact(FamilyAllowanceName,
		bc.FamilyAllowance(familyIncome, children),
		bc.FamilyAllowance(incomeAfter, children))

	return domain.FamilyAllowanceImpact{
		ChildBenefit:    ccb,
		FamilyAllowance: fa,
		TotalGain:       ccb.Gain.Add(fa.Gain),
	}
}

// CreditsImpact evaluates the credits and in-work benefits with and without
// the deduction. Work income drives the phase-ins and is not reduced by the
// deduction; only the net family income used for phase-outs is.
func (bc *BenefitCalculator) CreditsImpact(familyIncome, workIncome, deduction decimal.Decimal, couple, renter bool, children int) domain.CreditsImpact {
	incomeAfter := familyIncome.Sub(deduction)

	credits := []domain.BenefitImpact{
		domain.NewBenefitImpact(SalesTaxCreditName,
			bc.SalesTaxCredit(familyIncome, couple, children),
			bc.SalesTaxCredit(incomeAfter, couple, children)),
		domain.NewBenefitImpact(SolidarityCreditName,
			bc.SolidarityCredit(familyIncome, couple, renter, children),
			bc.SolidarityCredit(incomeAfter, couple, renter, children)),
		domain.NewBenefitImpact(WorkersBenefitName,
			bc.WorkersBenefit(workIncome, familyIncome, couple),
			bc.WorkersBenefit(workIncome, incomeAfter, couple)),
		domain.NewBenefitImpact(WorkPremiumName,
			bc.WorkPremium(workIncome, familyIncome, couple),
			bc.WorkPremium(workIncome, incomeAfter, couple)),
	}

	var total decimal.Decimal
	for _, c := range credits {
		total = total.Add(c.Gain)
	}
	return domain.CreditsImpact{Credits: credits, TotalGain: total}
}
