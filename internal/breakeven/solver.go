package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/transform"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches contribution parameters that reach a goal
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Optimize performs optimization based on the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.Config == nil || req.BaseScenario == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "configuration and base scenario are required",
		}
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case OptimizeRRSPContribution:
		return s.optimizeContribution(ctx, req)
	case OptimizeSpreadYears:
		return s.optimizeSpreadYears(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// reached builds the monotone predicate for a contribution goal. Every goal
// becomes easier to meet as the contribution grows.
func reached(req OptimizationRequest) (func(*OptimizationResult) bool, error) {
	c := req.Constraints
	switch req.Goal {
	case GoalMatchRefund:
		if c.TargetRefund == nil {
			return nil, &BreakEvenError{Operation: "optimize_rrsp_contribution", Message: "match_refund requires target_refund"}
		}
		target := *c.TargetRefund
		return func(r *OptimizationResult) bool { return r.TaxSaved.GreaterThanOrEqual(target) }, nil
	case GoalReachMarginal:
		if c.TargetRate == nil {
			return nil, &BreakEvenError{Operation: "optimize_rrsp_contribution", Message: "reach_marginal requires target_rate"}
		}
		target := *c.TargetRate
		return func(r *OptimizationResult) bool { return r.MarginalAfter.LessThanOrEqual(target) }, nil
	case GoalMatchBenefitGain:
		if c.TargetBenefitGain == nil {
			return nil, &BreakEvenError{Operation: "optimize_rrsp_contribution", Message: "match_benefit_gain requires target_benefit_gain"}
		}
		target := *c.TargetBenefitGain
		return func(r *OptimizationResult) bool { return r.BenefitGain.GreaterThanOrEqual(target) }, nil
	default:
		return nil, &BreakEvenError{
			Operation: "optimize_rrsp_contribution",
			Message:   fmt.Sprintf("goal %s does not apply to %s", req.Goal, req.Target),
		}
	}
}

// optimizeContribution bisects for the smallest RRSP contribution meeting the goal
func (s *Solver) optimizeContribution(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	goalMet, err := reached(req)
	if err != nil {
		return nil, err
	}

	low := decimal.Zero
	high := req.Config.Household.RRSPRoom
	if req.Constraints.MinContribution != nil {
		low = *req.Constraints.MinContribution
	}
	if req.Constraints.MaxContribution != nil {
		high = *req.Constraints.MaxContribution
	}
	if high.LessThan(low) {
		return nil, &BreakEvenError{
			Operation: "optimize_rrsp_contribution",
			Message:   fmt.Sprintf("no contribution range to search (%s to %s)", low.StringFixed(2), high.StringFixed(2)),
		}
	}

	iterations := 0
	evaluate := func(amount decimal.Decimal) (*OptimizationResult, error) {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.evaluateContribution(req, amount, iterations)
	}

	best, err := evaluate(high)
	if err != nil {
		return nil, err
	}
	if !goalMet(best) {
		return nil, &BreakEvenError{
			Operation: "optimize_rrsp_contribution",
			Message:   fmt.Sprintf("goal %s not reachable with contributions up to %s", req.Goal, money.FormatMoney(high)),
		}
	}

	lowest, err := evaluate(low)
	if err != nil {
		return nil, err
	}
	if goalMet(lowest) {
		lowest.Success = true
		lowest.ConvergenceInfo = "Goal already met at the minimum contribution"
		return lowest, nil
	}

	for high.Sub(low).GreaterThan(req.Tolerance) {
		if iterations >= req.MaxIterations {
			best.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
			return best, nil
		}

		mid := low.Add(high).Div(two).Round(2)
		result, err := evaluate(mid)
		if err != nil {
			return nil, err
		}
		if goalMet(result) {
			high = mid
			best = result
		} else {
			low = mid
		}
	}

	best.Iterations = iterations
	best.Success = true
	best.ConvergenceInfo = fmt.Sprintf("Converged within %s", money.FormatMoney(req.Tolerance))
	return best, nil
}

// evaluateContribution runs the base scenario with a replaced RRSP contribution
func (s *Solver) evaluateContribution(req OptimizationRequest, amount decimal.Decimal, iterations int) (*OptimizationResult, error) {
	modified, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{
		&transform.SetRRSPContribution{Amount: amount},
	})
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "optimize_rrsp_contribution",
			Message:   "failed to apply contribution transform",
			Cause:     err,
		}
	}

	summary := s.CalcEngine.RunScenario(req.Config.Household, *modified)
	result := s.evaluateResult(req, &summary, iterations)
	contribution := amount
	result.OptimalContribution = &contribution
	return result, nil
}

// optimizeSpreadYears grids over deduction spreads and keeps the largest refund.
// Ties keep the shorter spread.
func (s *Solver) optimizeSpreadYears(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Goal != GoalMaximizeRefund {
		return nil, &BreakEvenError{
			Operation: "optimize_spread_years",
			Message:   fmt.Sprintf("goal %s does not apply to %s", req.Goal, req.Target),
		}
	}

	maxYears := 5
	if req.Constraints.MaxSpreadYears != nil {
		maxYears = *req.Constraints.MaxSpreadYears
	}

	var bestResult *OptimizationResult
	iterations := 0

	for years := 1; years <= maxYears; years++ {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		modified, err := transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{
			&transform.SpreadDeduction{Years: years},
		})
		if err != nil {
			return nil, &BreakEvenError{
				Operation: "optimize_spread_years",
				Message:   "failed to apply spread transform",
				Cause:     err,
			}
		}

		summary := s.CalcEngine.RunScenario(req.Config.Household, *modified)
		result := s.evaluateResult(req, &summary, iterations)
		spread := years
		result.OptimalSpreadYears = &spread

		if bestResult == nil || result.SpreadSaved.GreaterThan(bestResult.SpreadSaved) {
			bestResult = result
		}
	}

	if bestResult == nil {
		return nil, &BreakEvenError{
			Operation: "optimize_spread_years",
			Message:   "no spread years evaluated",
		}
	}

	bestResult.Iterations = iterations
	bestResult.Success = true
	bestResult.ConvergenceInfo = fmt.Sprintf("Evaluated %d spreads", iterations)
	return bestResult, nil
}

// evaluateResult creates an optimization result from a scenario summary
func (s *Solver) evaluateResult(req OptimizationRequest, summary *domain.ScenarioSummary, iterations int) *OptimizationResult {
	benefits := summary.FamilyAllowance.TotalGain.Add(summary.Credits.TotalGain)
	result := &OptimizationResult{
		Request:                 req,
		Iterations:              iterations,
		ScenarioSummary:         summary,
		TaxSaved:                summary.TaxSaved,
		SpreadSaved:             summary.Spread.TotalSaved,
		BenefitGain:             benefits,
		TotalGain:               summary.TaxSaved.Add(benefits),
		MarginalAfter:           summary.MarginalAfter,
		AverageRate:             summary.AverageDeductionRate,
		BreakEvenWithdrawalRate: s.BreakEvenWithdrawalRate(summary),
	}
	return result
}

// BreakEvenWithdrawalRate is the withdrawal tax rate at which the RRSP and
// a TFSA funded with the after-refund deposits end with the same net value.
// Both grow at the same return, so that rate is the average deduction rate.
func (s *Solver) BreakEvenWithdrawalRate(summary *domain.ScenarioSummary) decimal.Decimal {
	if !summary.RRSPContribution.IsPositive() {
		return decimal.Zero
	}
	return summary.AverageDeductionRate
}

// CompareToBase fills in the differences against the unmodified base scenario
func (s *Solver) CompareToBase(result *OptimizationResult) {
	if result == nil || result.Request.Config == nil || result.Request.BaseScenario == nil {
		return
	}
	base := s.CalcEngine.RunScenario(result.Request.Config.Household, *result.Request.BaseScenario)
	baseGain := base.TaxSaved.Add(base.FamilyAllowance.TotalGain).Add(base.Credits.TotalGain)

	result.BaseScenarioSummary = &base
	result.GainDiffFromBase = result.TotalGain.Sub(baseGain)
	result.TaxDiffFromBase = result.TaxSaved.Sub(base.TaxSaved)
}
