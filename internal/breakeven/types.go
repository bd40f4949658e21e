package breakeven

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to search over
type OptimizationTarget string

const (
	OptimizeRRSPContribution OptimizationTarget = "rrsp_contribution"
	OptimizeSpreadYears      OptimizationTarget = "spread_years"
)

// OptimizationGoal defines what outcome to achieve
type OptimizationGoal string

const (
	GoalMatchRefund      OptimizationGoal = "match_refund"       // Smallest contribution reaching a refund
	GoalReachMarginal    OptimizationGoal = "reach_marginal"     // Smallest contribution bringing the marginal rate down to a target
	GoalMatchBenefitGain OptimizationGoal = "match_benefit_gain" // Smallest contribution unlocking a benefit gain
	GoalMaximizeRefund   OptimizationGoal = "maximize_refund"    // Largest total refund
)

// Constraints define bounds and targets for the search
type Constraints struct {
	// Contribution bounds. MaxContribution defaults to the household's RRSP room.
	MinContribution *decimal.Decimal `json:"min_contribution,omitempty"`
	MaxContribution *decimal.Decimal `json:"max_contribution,omitempty"`

	// Upper bound for the spread_years grid
	MaxSpreadYears *int `json:"max_spread_years,omitempty"`

	TargetRefund      *decimal.Decimal `json:"target_refund,omitempty"`
	TargetRate        *decimal.Decimal `json:"target_rate,omitempty"`
	TargetBenefitGain *decimal.Decimal `json:"target_benefit_gain,omitempty"`
}

// DefaultConstraints returns sensible default constraints
func DefaultConstraints() Constraints {
	minContribution := decimal.Zero
	maxSpread := 5

	return Constraints{
		MinContribution: &minContribution,
		MaxSpreadYears:  &maxSpread,
	}
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	BaseScenario  *domain.Scenario      `json:"base_scenario"`
	Config        *domain.Configuration `json:"-"`
	Target        OptimizationTarget    `json:"target"`
	Goal          OptimizationGoal      `json:"goal"`
	Constraints   Constraints           `json:"constraints"`
	MaxIterations int                   `json:"max_iterations"`
	Tolerance     decimal.Decimal       `json:"tolerance"` // Convergence tolerance for binary search, in dollars
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Optimized parameters
	OptimalContribution *decimal.Decimal `json:"optimal_contribution,omitempty"`
	OptimalSpreadYears  *int             `json:"optimal_spread_years,omitempty"`

	// Results at optimal parameters
	ScenarioSummary *domain.ScenarioSummary `json:"scenario_summary"`
	TaxSaved        decimal.Decimal         `json:"tax_saved"`
	SpreadSaved     decimal.Decimal         `json:"spread_saved"`
	BenefitGain     decimal.Decimal         `json:"benefit_gain"`
	TotalGain       decimal.Decimal         `json:"total_gain"`
	MarginalAfter   decimal.Decimal         `json:"marginal_after"`
	AverageRate     decimal.Decimal         `json:"average_rate"`
	// BreakEvenWithdrawalRate is the withdrawal tax rate at which the RRSP
	// and an equivalent after-tax TFSA end with the same net value.
	BreakEvenWithdrawalRate decimal.Decimal `json:"break_even_withdrawal_rate"`

	// Comparison to base (if applicable)
	BaseScenarioSummary *domain.ScenarioSummary `json:"base_scenario_summary,omitempty"`
	GainDiffFromBase    decimal.Decimal         `json:"gain_diff_from_base"`
	TaxDiffFromBase     decimal.Decimal         `json:"tax_diff_from_base"`
}

// MultiDimensionalResult contains results when solving several goals
type MultiDimensionalResult struct {
	Results          []OptimizationResult `json:"results"`
	BestByRefund     *OptimizationResult  `json:"best_by_refund,omitempty"`
	BestByEfficiency *OptimizationResult  `json:"best_by_efficiency,omitempty"`
	Recommendations  []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Algorithm     string          // "binary_search" or "grid_search"
	Tolerance     decimal.Decimal // Convergence tolerance
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Algorithm:     "binary_search",
		Tolerance:     decimal.NewFromInt(1), // $1 tolerance
		MaxIterations: 50,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinContribution != nil && c.MinContribution.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_contribution cannot be negative",
		}
	}

	if c.MinContribution != nil && c.MaxContribution != nil {
		if c.MinContribution.GreaterThan(*c.MaxContribution) {
			return &BreakEvenError{
				Operation: "validate_constraints",
				Message:   "min_contribution cannot be greater than max_contribution",
			}
		}
	}

	if c.MaxSpreadYears != nil && (*c.MaxSpreadYears < 1 || *c.MaxSpreadYears > 10) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "max_spread_years must be between 1 and 10",
		}
	}

	if c.TargetRate != nil && (c.TargetRate.IsNegative() || c.TargetRate.GreaterThan(decimal.NewFromInt(1))) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "target_rate must be between 0 and 1",
		}
	}

	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
