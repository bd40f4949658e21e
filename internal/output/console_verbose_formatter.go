package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleVerboseFormatter renders the detailed per-scenario console report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioResults) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintf(&buf, "RRSP / TFSA CONTRIBUTION ANALYSIS - TAX YEAR %d\n", results.TaxYear)
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)

	if len(results.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range results.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	writeHousehold(&buf, results.Household)

	for i, sc := range results.Scenarios {
		fmt.Fprintf(&buf, "SCENARIO %d: %s\n", i+1, sc.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeTaxImpact(&buf, sc)
		writeBrackets(&buf, sc.Brackets)
		writeSpread(&buf, sc.Spread)
		writeBenefits(&buf, sc)
		writeSplit(&buf, sc.Split)
		writeProjection(&buf, sc.Projection)
		fmt.Fprintf(&buf, "TOTAL FIRST-YEAR GAIN:    %s\n", FormatCurrency(TotalGain(sc)))
		fmt.Fprintln(&buf)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" && len(results.Scenarios) > 1 {
		fmt.Fprintln(&buf, "RECOMMENDATION")
		fmt.Fprintln(&buf, "==============")
		fmt.Fprintf(&buf, "%s gives the largest first-year gain: %s (refund %s, benefits %s)\n",
			rec.ScenarioName, FormatCurrency(rec.TotalGain), FormatCurrency(rec.TaxSaved), FormatSignedCurrency(rec.BenefitGain))
	}
	return buf.Bytes(), nil
}

func writeHousehold(w io.Writer, h domain.Household) {
	fmt.Fprintln(w, "HOUSEHOLD")
	fmt.Fprintln(w, "=========")
	fmt.Fprintf(w, "Salary:                %s\n", FormatCurrency(h.Salary))
	if !h.RentalIncome.IsZero() {
		fmt.Fprintf(w, "Rental income:         %s\n", FormatCurrency(h.RentalIncome))
	}
	fmt.Fprintf(w, "Total income:          %s\n", FormatCurrency(h.TotalIncome()))
	if h.Couple {
		fmt.Fprintf(w, "Spouse income:         %s\n", FormatCurrency(h.SpouseIncome))
		fmt.Fprintf(w, "Family income:         %s\n", FormatCurrency(h.FamilyIncome()))
	}
	if h.Children() > 0 {
		fmt.Fprintf(w, "Children:              %d under 6, %d aged 6-17\n", h.ChildrenUnder6, h.Children6To17)
	}
	fmt.Fprintf(w, "RRSP room:             %s\n", FormatCurrency(h.RRSPRoom))
	fmt.Fprintf(w, "TFSA room:             %s\n", FormatCurrency(h.TFSARoom))
	fmt.Fprintln(w)
}

func writeTaxImpact(w io.Writer, sc domain.ScenarioSummary) {
	fmt.Fprintln(w, "CONTRIBUTIONS:")
	fmt.Fprintf(w, "  RRSP:                   %s\n", FormatCurrency(sc.RRSPContribution))
	fmt.Fprintf(w, "  TFSA:                   %s\n", FormatCurrency(sc.TFSAContribution))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "TAX IMPACT:")
	fmt.Fprintf(w, "  Taxable income:         %s -> %s\n", FormatCurrency(sc.TotalIncome), FormatCurrency(sc.IncomeAfterDeduction))
	fmt.Fprintf(w, "  Income tax:             %s -> %s\n", FormatCurrency(sc.TaxBefore), FormatCurrency(sc.TaxAfter))
	fmt.Fprintf(w, "  Tax refund:             %s\n", FormatCurrency(sc.TaxSaved))
	fmt.Fprintf(w, "  Marginal rate:          %s -> %s\n", FormatPercentage(sc.MarginalBefore), FormatPercentage(sc.MarginalAfter))
	if sc.RRSPContribution.IsPositive() {
		fmt.Fprintf(w, "  Average rate deducted:  %s\n", FormatPercentage(sc.AverageDeductionRate))
	}
	fmt.Fprintln(w)
}

// FormatZoneMax renders the upper edge of a combined bracket
func FormatZoneMax(edge decimal.Decimal) string {
	if edge.GreaterThanOrEqual(domain.UnboundedIncome) {
		return "and up"
	}
	return FormatCurrency(edge)
}

func writeBrackets(w io.Writer, zones []domain.CombinedBracket) {
	if len(zones) == 0 {
		return
	}
	fmt.Fprintln(w, "COMBINED BRACKETS:")
	fmt.Fprintf(w, "  %-14s %-14s %-9s %s\n", "From", "To", "Rate", "Deducted")
	for _, z := range zones {
		marker := " "
		if z.InRange {
			marker = "*"
		}
		deducted := ""
		if z.InRange {
			deducted = FormatCurrency(z.Deducted)
		}
		fmt.Fprintf(w, "%s %-14s %-14s %-9s %s\n", marker, FormatCurrency(z.Min), FormatZoneMax(z.Max), FormatPercentage(z.Rate), deducted)
	}
	fmt.Fprintln(w)
}

func writeSpread(w io.Writer, spread domain.SpreadComparison) {
	if len(spread.Years) < 2 {
		return
	}
	fmt.Fprintf(w, "DEDUCTION SPREAD OVER %d YEARS:\n", len(spread.Years))
	for _, y := range spread.Years {
		fmt.Fprintf(w, "  Year %d: deduct %s, refund %s (%s)\n", y.Year,
			FormatCurrency(y.Contribution), FormatCurrency(y.Saved), FormatPercentage(y.AverageRate))
	}
	fmt.Fprintf(w, "  Total refund:           %s\n", FormatCurrency(spread.TotalSaved))
	fmt.Fprintf(w, "  Deducting at once:      %s\n", FormatCurrency(spread.OneShotSaved))
	fmt.Fprintf(w, "  Difference:             %s\n", FormatSignedCurrency(spread.Difference))
	fmt.Fprintln(w)
}

func writeBenefits(w io.Writer, sc domain.ScenarioSummary) {
	impacts := append([]domain.BenefitImpact{sc.FamilyAllowance.ChildBenefit, sc.FamilyAllowance.FamilyAllowance}, sc.Credits.Credits...)

	var lines []domain.BenefitImpact
	for _, b := range impacts {
		if b.Applicable() {
			lines = append(lines, b)
		}
	}
	if len(lines) == 0 {
		return
	}
	fmt.Fprintln(w, "BENEFITS AND CREDITS:")
	for _, b := range lines {
		fmt.Fprintf(w, "  %-30s %s -> %s (%s)\n", b.Name+":", FormatCurrency(b.Before), FormatCurrency(b.After), FormatSignedCurrency(b.Gain))
	}
	fmt.Fprintf(w, "  %-30s %s\n", "Total gain:", FormatSignedCurrency(sc.FamilyAllowance.TotalGain.Add(sc.Credits.TotalGain)))
	fmt.Fprintln(w)
}

func writeSplit(w io.Writer, split domain.OptimalSplit) {
	fmt.Fprintln(w, "SUGGESTED SPLIT:")
	fmt.Fprintf(w, "  RRSP:                   %s\n", FormatCurrency(split.RecommendedRRSP))
	fmt.Fprintf(w, "  TFSA:                   %s\n", FormatCurrency(split.RecommendedTFSA))
	fmt.Fprintf(w, "  Tax refund:             %s\n", FormatCurrency(split.TaxSaved))
	fmt.Fprintf(w, "  %s\n", split.Justification)
	fmt.Fprintln(w)
}

// projectionMilestones picks every fifth year plus the last one
func projectionMilestones(data []domain.ProjectionYear) []domain.ProjectionYear {
	var out []domain.ProjectionYear
	for i, y := range data {
		if y.Year == 0 {
			continue
		}
		if y.Year%5 == 0 || y.Year == 1 || i == len(data)-1 {
			out = append(out, y)
		}
	}
	return out
}

func writeProjection(w io.Writer, data []domain.ProjectionYear) {
	milestones := projectionMilestones(data)
	if len(milestones) == 0 {
		return
	}
	fmt.Fprintln(w, "PROJECTION:")
	fmt.Fprintf(w, "  %-6s %-14s %-14s %-14s %s\n", "Year", "RRSP", "RRSP net", "TFSA", "Advantage")
	for _, y := range milestones {
		fmt.Fprintf(w, "  %-6d %-14s %-14s %-14s %s\n", y.Year, FormatCurrency(y.RRSP), FormatCurrency(y.RRSPNet),
			FormatCurrency(y.TFSA), advantage(y))
	}
	fmt.Fprintln(w)
}

// advantage names the account with the larger after-tax value
func advantage(y domain.ProjectionYear) string {
	switch {
	case y.RRSPNet.GreaterThan(y.TFSANet):
		return "RRSP"
	case y.TFSANet.GreaterThan(y.RRSPNet):
		return "TFSA"
	default:
		return "-"
	}
}
