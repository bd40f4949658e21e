package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/pkg/money"
)

// OptimizeMultiDimensional runs every goal the constraints carry a target for,
// plus the spread search, and compares the results
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	baseScenario *domain.Scenario,
	config *domain.Configuration,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	type plan struct {
		target OptimizationTarget
		goal   OptimizationGoal
	}
	plans := []plan{}
	if constraints.TargetRefund != nil {
		plans = append(plans, plan{OptimizeRRSPContribution, GoalMatchRefund})
	}
	if constraints.TargetRate != nil {
		plans = append(plans, plan{OptimizeRRSPContribution, GoalReachMarginal})
	}
	if constraints.TargetBenefitGain != nil {
		plans = append(plans, plan{OptimizeRRSPContribution, GoalMatchBenefitGain})
	}
	plans = append(plans, plan{OptimizeSpreadYears, GoalMaximizeRefund})

	var results []OptimizationResult

	for _, p := range plans {
		req := OptimizationRequest{
			BaseScenario:  baseScenario,
			Config:        config,
			Target:        p.target,
			Goal:          p.goal,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.CalcEngine.Logger.Warnf("%s/%s: %v", p.target, p.goal, err)
			continue
		}

		if result != nil && result.Success {
			results = append(results, *result)
		}
	}

	if len(results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no successful optimizations found",
		}
	}

	mdResult := &MultiDimensionalResult{
		Results: results,
	}

	for i := range results {
		if mdResult.BestByRefund == nil ||
			results[i].TotalGain.GreaterThan(mdResult.BestByRefund.TotalGain) {
			mdResult.BestByRefund = &results[i]
		}
	}

	for i := range results {
		if !results[i].AverageRate.IsPositive() {
			continue
		}
		if mdResult.BestByEfficiency == nil ||
			results[i].AverageRate.GreaterThan(mdResult.BestByEfficiency.AverageRate) {
			mdResult.BestByEfficiency = &results[i]
		}
	}

	mdResult.Recommendations = s.generateMultiDimensionalRecommendations(mdResult)

	return mdResult, nil
}

// generateMultiDimensionalRecommendations creates recommendations from multi-dimensional results
func (s *Solver) generateMultiDimensionalRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	if best := result.BestByRefund; best != nil {
		rec := fmt.Sprintf("Largest first-year gain: %s (%s)", best.Request.Goal, money.FormatMoney(best.TotalGain))
		if best.OptimalContribution != nil {
			rec += fmt.Sprintf(" contributing %s", money.FormatMoney(*best.OptimalContribution))
		}
		if best.OptimalSpreadYears != nil {
			rec += fmt.Sprintf(" spread over %d years", *best.OptimalSpreadYears)
		}
		recommendations = append(recommendations, rec)
	}

	if best := result.BestByEfficiency; best != nil {
		recommendations = append(recommendations,
			fmt.Sprintf("Best refund per dollar: %s (%s)", best.Request.Goal, money.FormatPercent(best.AverageRate)))
		recommendations = append(recommendations,
			fmt.Sprintf("The RRSP beats the TFSA if retirement withdrawals are taxed below %s",
				money.FormatPercent(best.BreakEvenWithdrawalRate)))
	}

	return recommendations
}
