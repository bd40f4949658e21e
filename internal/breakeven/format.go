package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("RRSP TARGET SOLVER RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Optimization Target: %s\n", result.Request.Target))
	sb.WriteString(fmt.Sprintf("Optimization Goal:   %s\n", result.Request.Goal))
	if result.Request.BaseScenario != nil {
		sb.WriteString(fmt.Sprintf("Base Scenario:       %s\n", result.Request.BaseScenario.Name))
	}
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("OPTIMAL PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.OptimalContribution != nil {
		sb.WriteString(fmt.Sprintf("RRSP Contribution:   %s\n", money.FormatMoney(*result.OptimalContribution)))
	}
	if result.OptimalSpreadYears != nil {
		sb.WriteString(fmt.Sprintf("Spread Over:         %d years\n", *result.OptimalSpreadYears))
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Tax Refund:              %s\n", money.FormatMoney(result.TaxSaved)))
	if result.OptimalSpreadYears != nil {
		sb.WriteString(fmt.Sprintf("Refund Over Spread:      %s\n", money.FormatMoney(result.SpreadSaved)))
	}
	sb.WriteString(fmt.Sprintf("Benefit Gain:            %s\n", money.FormatMoney(result.BenefitGain)))
	sb.WriteString(fmt.Sprintf("Total First-Year Gain:   %s\n", money.FormatMoney(result.TotalGain)))
	sb.WriteString(fmt.Sprintf("Marginal Rate After:     %s\n", money.FormatPercent(result.MarginalAfter)))
	sb.WriteString(fmt.Sprintf("Average Deduction Rate:  %s\n", money.FormatPercent(result.AverageRate)))
	if result.BreakEvenWithdrawalRate.IsPositive() {
		sb.WriteString(fmt.Sprintf("Break-Even Withdrawal:   %s\n", money.FormatPercent(result.BreakEvenWithdrawalRate)))
	}
	sb.WriteString("\n")

	if result.BaseScenarioSummary != nil {
		sb.WriteString("COMPARISON TO BASE SCENARIO\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("Base Contribution:    %s\n", money.FormatMoney(result.BaseScenarioSummary.RRSPContribution)))
		if !result.GainDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("First-Year Gain:      %s%s\n",
				tf.deltaSymbol(result.GainDiffFromBase), money.FormatMoney(result.GainDiffFromBase.Abs())))
		}
		if !result.TaxDiffFromBase.IsZero() {
			sb.WriteString(fmt.Sprintf("Tax Refund:           %s%s\n",
				tf.deltaSymbol(result.TaxDiffFromBase), money.FormatMoney(result.TaxDiffFromBase.Abs())))
		}
		sb.WriteString("\n")
	}

	c := result.Request.Constraints
	switch {
	case result.Request.Goal == GoalMatchRefund && c.TargetRefund != nil:
		tf.writeTarget(&sb, "Target Refund", money.FormatMoney(*c.TargetRefund), money.FormatMoney(result.TaxSaved))
	case result.Request.Goal == GoalReachMarginal && c.TargetRate != nil:
		tf.writeTarget(&sb, "Target Rate", money.FormatPercent(*c.TargetRate), money.FormatPercent(result.MarginalAfter))
	case result.Request.Goal == GoalMatchBenefitGain && c.TargetBenefitGain != nil:
		tf.writeTarget(&sb, "Target Benefit Gain", money.FormatMoney(*c.TargetBenefitGain), money.FormatMoney(result.BenefitGain))
	}

	return sb.String()
}

func (tf *TableFormatter) writeTarget(sb *strings.Builder, label, target, achieved string) {
	sb.WriteString("TARGET MATCH\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %s\n", label+":", target))
	sb.WriteString(fmt.Sprintf("%-20s %s\n", "Achieved:", achieved))
	sb.WriteString("\n")
}

// FormatMultiDimensional formats results from multiple optimizations
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("RRSP TARGET SOLVER SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-20s %15s %15s %12s %12s\n",
		"Goal", "Contribution", "Total Gain", "Avg Rate", "Spread"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		contribution := "-"
		if res.OptimalContribution != nil {
			contribution = tf.formatShort(*res.OptimalContribution)
		} else if res.ScenarioSummary != nil {
			contribution = tf.formatShort(res.ScenarioSummary.RRSPContribution)
		}
		spread := "-"
		if res.OptimalSpreadYears != nil {
			spread = fmt.Sprintf("%d years", *res.OptimalSpreadYears)
		}
		sb.WriteString(fmt.Sprintf("%-20s %15s %15s %12s %12s\n",
			tf.truncate(string(res.Request.Goal), 20),
			contribution,
			tf.formatShort(res.TotalGain),
			money.FormatPercent(res.AverageRate),
			spread))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-dimensional results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + " M$"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + " k$"
	}
	return d.StringFixed(0) + " $"
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
