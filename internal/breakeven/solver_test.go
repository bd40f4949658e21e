package breakeven

import (
	"context"
	"testing"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func testRequest(goal OptimizationGoal, constraints Constraints) OptimizationRequest {
	config := &domain.Configuration{
		Household: domain.Household{
			Salary:       decimal.NewFromInt(130000),
			RentalIncome: decimal.NewFromInt(7500),
			RRSPRoom:     decimal.NewFromInt(30000),
			TFSARoom:     decimal.NewFromInt(20000),
		},
		Scenarios: []domain.Scenario{
			{Name: "Base", RRSPContribution: decimal.NewFromInt(25000), ProjectionYears: 20},
		},
	}
	return OptimizationRequest{
		BaseScenario: &config.Scenarios[0],
		Config:       config,
		Target:       OptimizeRRSPContribution,
		Goal:         goal,
		Constraints:  constraints,
	}
}

func TestNewDefaultSolver(t *testing.T) {
	calcEngine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(calcEngine)

	require.NotNil(t, solver)
	assert.Same(t, calcEngine, solver.CalcEngine)
	assert.Equal(t, "binary_search", solver.Options.Algorithm)
	assert.Equal(t, 50, solver.Options.MaxIterations)
}

func TestSolver_MatchRefund(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	income := decimal.NewFromInt(137500)
	target := decimal.NewFromInt(5000)

	result, err := solver.Optimize(context.Background(), testRequest(GoalMatchRefund, Constraints{TargetRefund: &target}))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.OptimalContribution)

	contribution := *result.OptimalContribution
	assert.True(t, result.TaxSaved.GreaterThanOrEqual(target))
	assert.True(t, contribution.LessThanOrEqual(decimal.NewFromInt(30000)))

	// a couple of dollars less no longer reaches the target
	short := engine.TaxCalc.CalculateTaxSavings(income, contribution.Sub(decimal.NewFromInt(2)))
	assert.True(t, short.LessThan(target), "refund at %s", contribution.String())
	assert.LessOrEqual(t, result.Iterations, 50)
}

func TestSolver_ReachMarginal(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	income := decimal.NewFromInt(137500)
	target := decimal.NewFromFloat(0.41)

	result, err := solver.Optimize(context.Background(), testRequest(GoalReachMarginal, Constraints{TargetRate: &target}))
	require.NoError(t, err)
	require.True(t, result.Success)

	contribution := *result.OptimalContribution
	assert.True(t, result.MarginalAfter.LessThanOrEqual(target))
	assert.True(t, engine.MarginalRate(income.Sub(contribution).Add(decimal.NewFromInt(2))).GreaterThan(target))
}

func TestSolver_GoalAlreadyMet(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	target := decimal.Zero

	result, err := solver.Optimize(context.Background(), testRequest(GoalMatchRefund, Constraints{TargetRefund: &target}))
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.OptimalContribution.IsZero())
	assert.Equal(t, "Goal already met at the minimum contribution", result.ConvergenceInfo)
}

func TestSolver_Errors(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())

	_, err := solver.Optimize(context.Background(), testRequest(GoalMatchRefund, Constraints{TargetRefund: dec(1000000)}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")

	_, err = solver.Optimize(context.Background(), testRequest(GoalMatchRefund, Constraints{}))
	assert.Contains(t, err.Error(), "match_refund requires target_refund")

	_, err = solver.Optimize(context.Background(), testRequest(GoalMaximizeRefund, Constraints{}))
	assert.Contains(t, err.Error(), "does not apply")

	req := testRequest(GoalMatchRefund, Constraints{TargetRefund: dec(100)})
	req.Target = "retirement_date"
	_, err = solver.Optimize(context.Background(), req)
	assert.Contains(t, err.Error(), "unsupported optimization target")

	req = testRequest(GoalMatchRefund, Constraints{TargetRefund: dec(100)})
	req.Config = nil
	_, err = solver.Optimize(context.Background(), req)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solver.Optimize(ctx, testRequest(GoalMatchRefund, Constraints{TargetRefund: dec(100)}))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolver_SpreadYears(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	maxYears := 3

	req := testRequest(GoalMaximizeRefund, Constraints{MaxSpreadYears: &maxYears})
	req.Target = OptimizeSpreadYears

	result, err := solver.Optimize(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.NotNil(t, result.OptimalSpreadYears)

	assert.GreaterOrEqual(t, *result.OptimalSpreadYears, 1)
	assert.LessOrEqual(t, *result.OptimalSpreadYears, 3)
	assert.Equal(t, 3, result.Iterations)
	assert.True(t, result.SpreadSaved.GreaterThanOrEqual(result.ScenarioSummary.Spread.OneShotSaved))
}

func TestSolver_BreakEvenWithdrawalRate(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	solver := NewDefaultSolver(engine)
	req := testRequest(GoalMatchRefund, Constraints{})

	summary := engine.RunScenario(req.Config.Household, *req.BaseScenario)
	rate := solver.BreakEvenWithdrawalRate(&summary)

	assert.True(t, rate.Equal(summary.AverageDeductionRate), rate.String())

	// a TFSA funded with the after-refund deposit ends at (1 - rate) of the RRSP
	deposit := summary.RRSPContribution
	data := engine.Projector.Project(deposit, deposit.Mul(decimal.NewFromInt(1).Sub(rate)), 10)
	last := data[len(data)-1]
	assert.InDelta(t, 1-rate.InexactFloat64(), last.TFSA.Div(last.RRSP).InexactFloat64(), 1e-9)

	empty := domain.ScenarioSummary{}
	assert.True(t, solver.BreakEvenWithdrawalRate(&empty).IsZero())
}

func TestSolver_CompareToBase(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	target := decimal.NewFromInt(2000)

	result, err := solver.Optimize(context.Background(), testRequest(GoalMatchRefund, Constraints{TargetRefund: &target}))
	require.NoError(t, err)

	solver.CompareToBase(result)
	require.NotNil(t, result.BaseScenarioSummary)
	// the base contributes 25 000 $, far more than a 2 000 $ refund needs
	assert.True(t, result.TaxDiffFromBase.IsNegative())
}

func TestOptimizeMultiDimensional(t *testing.T) {
	solver := NewDefaultSolver(calculation.NewCalculationEngine())
	req := testRequest(GoalMatchRefund, Constraints{})
	rate := decimal.NewFromFloat(0.99)

	md, err := solver.OptimizeMultiDimensional(context.Background(), req.BaseScenario, req.Config, Constraints{
		TargetRefund: dec(5000),
		TargetRate:   &rate,
	})
	require.NoError(t, err)
	require.Len(t, md.Results, 3)
	require.NotNil(t, md.BestByRefund)
	require.NotNil(t, md.BestByEfficiency)
	require.NotEmpty(t, md.Recommendations)
	assert.Contains(t, md.Recommendations[0], "Largest first-year gain")

	_, err = solver.OptimizeMultiDimensional(context.Background(), req.BaseScenario, req.Config, Constraints{MaxSpreadYears: new(int)})
	assert.Error(t, err)
}
