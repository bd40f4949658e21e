package compare

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"RRSP Contribution",
		"TFSA Contribution",
		"Tax Saved",
		"Benefit Gain",
		"Total Gain",
		"Average Rate",
		"Marginal After",
		"Projection Years",
		"Final RRSP Net",
		"Final TFSA",
		"Final Wealth",
		"Gain Diff from Base",
		"Tax Diff from Base",
		"Wealth Diff from Base",
		"Wealth % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.RRSPContribution.StringFixed(2),
		result.TFSAContribution.StringFixed(2),
		result.TaxSaved.StringFixed(2),
		result.BenefitGain.StringFixed(2),
		result.TotalGain.StringFixed(2),
		result.AverageRate.StringFixed(4),
		result.MarginalAfter.StringFixed(4),
		formatInt(result.ProjectionYears),
		result.FinalRRSPNet.StringFixed(2),
		result.FinalTFSA.StringFixed(2),
		result.FinalWealth.StringFixed(2),
		result.GainDiffFromBase.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.WealthDiffFromBase.StringFixed(2),
		result.WealthPctFromBase.StringFixed(2),
	}
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
