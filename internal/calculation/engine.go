package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine is the stateless facade over every calculator. It holds
// only the immutable rules and a logger, so one engine can serve concurrent
// callers.
type CalculationEngine struct {
	Rules     domain.TaxRules
	TaxCalc   *ComprehensiveTaxCalculator
	Benefits  *BenefitCalculator
	Projector *ProjectionCalculator
	Logger    Logger
	Debug     bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates an engine with the built-in 2024 rules
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithRules(domain.DefaultTaxRules())
}

// NewCalculationEngineWithRules creates an engine from a rule set
func NewCalculationEngineWithRules(rules domain.TaxRules) *CalculationEngine {
	return &CalculationEngine{
		Rules:     rules,
		TaxCalc:   NewComprehensiveTaxCalculatorWithRules(rules),
		Benefits:  NewBenefitCalculator(rules),
		Projector: NewProjectionCalculator(rules.Projection),
		Logger:    NopLogger{},
	}
}

// SetLogger installs a logger; nil restores the no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// TotalTax returns federal (after abatement) plus provincial tax
func (ce *CalculationEngine) TotalTax(income decimal.Decimal) decimal.Decimal {
	return ce.TaxCalc.CalculateTotalTax(income)
}

// FederalTax returns the federal tax after abatement
func (ce *CalculationEngine) FederalTax(income decimal.Decimal) decimal.Decimal {
	return ce.TaxCalc.CalculateFederalTax(income)
}

// ProvincialTax returns the Quebec tax
func (ce *CalculationEngine) ProvincialTax(income decimal.Decimal) decimal.Decimal {
	return ce.TaxCalc.CalculateProvincialTax(income)
}

// MarginalRate returns the combined tax on the next dollar of income
func (ce *CalculationEngine) MarginalRate(income decimal.Decimal) decimal.Decimal {
	return ce.TaxCalc.CalculateMarginalRate(income)
}

// BracketBreakdown returns the combined zones below income with the share of
// the deduction falling into each
func (ce *CalculationEngine) BracketBreakdown(income, deduction decimal.Decimal) []domain.CombinedBracket {
	return ce.TaxCalc.BracketBreakdown(income, deduction)
}

// Projection compounds annual deposits into both accounts for the given years
func (ce *CalculationEngine) Projection(rrspDeposit, tfsaDeposit decimal.Decimal, years int) []domain.ProjectionYear {
	return ce.Projector.Project(rrspDeposit, tfsaDeposit, years)
}

// FamilyAllowanceImpact reports the child benefit and family allowance gains of a deduction
func (ce *CalculationEngine) FamilyAllowanceImpact(familyIncome, deduction decimal.Decimal, childrenUnder6, children6To17 int) domain.FamilyAllowanceImpact {
	return ce.Benefits.FamilyAllowanceImpact(familyIncome, deduction, childrenUnder6, children6To17)
}

// CreditsImpact reports the credit and in-work benefit gains of a deduction
func (ce *CalculationEngine) CreditsImpact(familyIncome, workIncome, deduction decimal.Decimal, couple, renter bool, children int) domain.CreditsImpact {
	return ce.Benefits.CreditsImpact(familyIncome, workIncome, deduction, couple, renter, children)
}

// RunScenario computes the full summary for one contribution scenario
func (ce *CalculationEngine) RunScenario(household domain.Household, scenario domain.Scenario) domain.ScenarioSummary {
	income := household.TotalIncome()
	contribution := scenario.RRSPContribution
	after := income.Sub(contribution)

	taxBefore := ce.TotalTax(income)
	taxAfter := ce.TotalTax(after)
	saved := taxBefore.Sub(taxAfter)

	avgRate := decimal.Zero
	if contribution.IsPositive() {
		avgRate = saved.Div(contribution)
	}

	years := scenario.ProjectionYears
	if years == 0 {
		years = ce.Rules.Projection.DefaultYears
	}

	if ce.Debug {
		ce.Logger.Debugf("scenario %q: income=%s rrsp=%s tfsa=%s years=%d",
			scenario.Name, income.StringFixed(2), contribution.StringFixed(2),
			scenario.TFSAContribution.StringFixed(2), years)
	}

	summary := domain.ScenarioSummary{
		Name:                 scenario.Name,
		TotalIncome:          income,
		IncomeAfterDeduction: after,
		TaxBefore:            taxBefore,
		TaxAfter:             taxAfter,
		TaxSaved:             saved,
		MarginalBefore:       ce.MarginalRate(income),
		MarginalAfter:        ce.MarginalRate(after),
		AverageDeductionRate: avgRate,
		Brackets:             ce.BracketBreakdown(income, contribution),
		Projection:           ce.Projection(contribution, scenario.TFSAContribution, years),
		Split: ce.OptimalSplit(income, contribution.Add(scenario.TFSAContribution),
			household.RRSPRoom, household.TFSARoom),
		Spread: ce.SpreadSavings(income, contribution, household.RRSPRoom, scenario.SpreadYears),
		FamilyAllowance: ce.FamilyAllowanceImpact(household.FamilyIncome(), contribution,
			household.ChildrenUnder6, household.Children6To17),
		Credits: ce.CreditsImpact(household.FamilyIncome(), household.WorkIncome(), contribution,
			household.Couple, household.Renter, household.Children()),
		RRSPContribution: contribution,
		TFSAContribution: scenario.TFSAContribution,
	}

	if ce.Debug {
		ce.Logger.Debugf("scenario %q: tax %s -> %s, saved %s, marginal %s -> %s",
			scenario.Name, taxBefore.StringFixed(2), taxAfter.StringFixed(2), saved.StringFixed(2),
			summary.MarginalBefore.String(), summary.MarginalAfter.String())
	}
	return summary
}

// RunScenarios computes every scenario of a configuration
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioResults, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if len(config.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to run")
	}

	results := &domain.ScenarioResults{
		TaxYear:   ce.Rules.Metadata.TaxYear,
		Household: config.Household,
		Scenarios: make([]domain.ScenarioSummary, 0, len(config.Scenarios)),
	}
	for _, scenario := range config.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		results.Scenarios = append(results.Scenarios, ce.RunScenario(config.Household, scenario))
	}
	ce.Logger.Infof("computed %d scenario(s) for tax year %d", len(results.Scenarios), results.TaxYear)
	return results, nil
}

// RunScenarioAuto runs the scenario at index
func (ce *CalculationEngine) RunScenarioAuto(ctx context.Context, config *domain.Configuration, index int) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if index < 0 || index >= len(config.Scenarios) {
		return nil, fmt.Errorf("scenario index %d out of range", index)
	}
	summary := ce.RunScenario(config.Household, config.Scenarios[index])
	return &summary, nil
}
