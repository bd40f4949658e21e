package calculation

import (
	"sort"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal and Quebec brackets are the 2024 tables, no indexing.
// 2. Each jurisdiction subtracts its own basic personal amount from income
//    before the brackets apply. Other non-refundable credits are ignored.
// 3. Quebec residents get the 16.5% federal abatement, applied to the whole
//    federal tax.
// 4. Income is a single figure: salary and rental income are taxed alike.

var one = decimal.NewFromInt(1)

// CalculateBracketTax returns the tax owed on income under a single table,
// before any abatement. Income at or below the personal amount owes nothing.
func CalculateBracketTax(income decimal.Decimal, table domain.BracketTable) decimal.Decimal {
	taxable := income.Sub(table.PersonalAmount)
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	var totalTax decimal.Decimal
	for _, b := range table.Brackets {
		if taxable.LessThanOrEqual(b.Min) {
			break
		}
		upper := taxable
		if !b.IsUnbounded() {
			upper = decimal.Min(taxable, b.Max)
		}
		totalTax = totalTax.Add(upper.Sub(b.Min).Mul(b.Rate))
	}
	return totalTax
}

// BracketTaxCalculator applies one jurisdiction's table. Factor scales the
// result; it is 1 - abatement for the federal table and 1 otherwise.
type BracketTaxCalculator struct {
	Table  domain.BracketTable
	Factor decimal.Decimal
}

// NewFederalTaxCalculator creates the federal calculator with the Quebec abatement
func NewFederalTaxCalculator(rules domain.TaxRules) *BracketTaxCalculator {
	return &BracketTaxCalculator{
		Table:  rules.Federal,
		Factor: one.Sub(rules.FederalAbatement),
	}
}

// NewProvincialTaxCalculator creates the Quebec calculator
func NewProvincialTaxCalculator(rules domain.TaxRules) *BracketTaxCalculator {
	return &BracketTaxCalculator{
		Table:  rules.Provincial,
		Factor: one,
	}
}

// CalculateTax returns the jurisdiction's tax on income
func (btc *BracketTaxCalculator) CalculateTax(income decimal.Decimal) decimal.Decimal {
	return CalculateBracketTax(income, btc.Table).Mul(btc.Factor)
}

// RateAt returns the scaled marginal rate covering a gross income point, or
// zero when the point is below the personal amount.
func (btc *BracketTaxCalculator) RateAt(income decimal.Decimal) decimal.Decimal {
	if income.LessThan(btc.Table.PersonalAmount) {
		return decimal.Zero
	}
	b, ok := btc.Table.Find(income.Sub(btc.Table.PersonalAmount))
	if !ok {
		return decimal.Zero
	}
	return b.Rate.Mul(btc.Factor)
}

// Breakpoints returns every bracket edge expressed in gross income. The
// unbounded top edge is reported as domain.UnboundedIncome, unshifted.
func (btc *BracketTaxCalculator) Breakpoints() []decimal.Decimal {
	points := make([]decimal.Decimal, 0, 2*len(btc.Table.Brackets))
	for _, b := range btc.Table.Brackets {
		points = append(points, b.Min.Add(btc.Table.PersonalAmount))
		if b.IsUnbounded() {
			points = append(points, domain.UnboundedIncome)
		} else {
			points = append(points, b.Max.Add(btc.Table.PersonalAmount))
		}
	}
	return points
}

// ComprehensiveTaxCalculator combines the federal and provincial calculators
type ComprehensiveTaxCalculator struct {
	FederalTaxCalc    *BracketTaxCalculator
	ProvincialTaxCalc *BracketTaxCalculator
}

// NewComprehensiveTaxCalculator creates a calculator with the default rules
func NewComprehensiveTaxCalculator() *ComprehensiveTaxCalculator {
	return NewComprehensiveTaxCalculatorWithRules(domain.DefaultTaxRules())
}

// NewComprehensiveTaxCalculatorWithRules creates a calculator from a rule set
func NewComprehensiveTaxCalculatorWithRules(rules domain.TaxRules) *ComprehensiveTaxCalculator {
	return &ComprehensiveTaxCalculator{
		FederalTaxCalc:    NewFederalTaxCalculator(rules),
		ProvincialTaxCalc: NewProvincialTaxCalculator(rules),
	}
}

// CalculateFederalTax returns the federal tax after abatement
func (ctc *ComprehensiveTaxCalculator) CalculateFederalTax(income decimal.Decimal) decimal.Decimal {
	return ctc.FederalTaxCalc.CalculateTax(income)
}

// CalculateProvincialTax returns the Quebec tax
func (ctc *ComprehensiveTaxCalculator) CalculateProvincialTax(income decimal.Decimal) decimal.Decimal {
	return ctc.ProvincialTaxCalc.CalculateTax(income)
}

// CalculateTotalTax returns federal plus provincial tax
func (ctc *ComprehensiveTaxCalculator) CalculateTotalTax(income decimal.Decimal) decimal.Decimal {
	return ctc.CalculateFederalTax(income).Add(ctc.CalculateProvincialTax(income))
}

// CalculateMarginalRate is the tax on one more dollar of income. It is a
// finite difference on purpose: at a bracket edge it reports the rate of
// the bracket the extra dollar lands in.
func (ctc *ComprehensiveTaxCalculator) CalculateMarginalRate(income decimal.Decimal) decimal.Decimal {
	return ctc.CalculateTotalTax(income.Add(one)).Sub(ctc.CalculateTotalTax(income))
}

// CalculateTaxSavings returns the tax no longer owed after a deduction
func (ctc *ComprehensiveTaxCalculator) CalculateTaxSavings(income, deduction decimal.Decimal) decimal.Decimal {
	return ctc.CalculateTotalTax(income).Sub(ctc.CalculateTotalTax(income.Sub(deduction)))
}

// combinedBreakpoints merges both tables' edges with 0, sorted and deduplicated
func (ctc *ComprehensiveTaxCalculator) combinedBreakpoints() []decimal.Decimal {
	points := []decimal.Decimal{decimal.Zero}
	points = append(points, ctc.FederalTaxCalc.Breakpoints()...)
	points = append(points, ctc.ProvincialTaxCalc.Breakpoints()...)

	sort.SliceStable(points, func(i, j int) bool { return points[i].LessThan(points[j]) })

	unique := points[:1]
	for _, p := range points[1:] {
		if !p.Equal(unique[len(unique)-1]) {
			unique = append(unique, p)
		}
	}
	return unique
}
