package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioResults) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RRSP SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Total income: %s\n", FormatCurrency(results.Household.TotalIncome()))
	fmt.Fprintln(&buf)
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		fmt.Fprintf(&buf, "%s: RRSP=%s Refund=%s Marginal=%s->%s\n",
			sc.Name,
			FormatCurrency(sc.RRSPContribution),
			FormatCurrency(sc.TaxSaved),
			FormatPercentage(sc.MarginalBefore),
			FormatPercentage(sc.MarginalAfter),
		)
		fmt.Fprintf(&buf, "  Benefits=%s TotalGain=%s\n",
			FormatSignedCurrency(sc.FamilyAllowance.TotalGain.Add(sc.Credits.TotalGain)), FormatCurrency(TotalGain(sc)))
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (gain %s, %s per dollar)\n", rec.ScenarioName, FormatCurrency(rec.TotalGain), FormatPercentage(rec.GainPerDollar))
	}
	return buf.Bytes(), nil
}
