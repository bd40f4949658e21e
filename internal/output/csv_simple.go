package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioResults) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "RRSPContribution", "TFSAContribution", "TaxBefore", "TaxAfter", "TaxSaved",
		"MarginalBefore", "MarginalAfter", "BenefitGain", "TotalGain", "RecommendedRRSP", "RecommendedTFSA"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		row := []string{
			sc.Name,
			sc.RRSPContribution.StringFixed(2),
			sc.TFSAContribution.StringFixed(2),
			sc.TaxBefore.StringFixed(2),
			sc.TaxAfter.StringFixed(2),
			sc.TaxSaved.StringFixed(2),
			sc.MarginalBefore.StringFixed(4),
			sc.MarginalAfter.StringFixed(4),
			sc.FamilyAllowance.TotalGain.Add(sc.Credits.TotalGain).StringFixed(2),
			TotalGain(sc).StringFixed(2),
			sc.Split.RecommendedRRSP.StringFixed(2),
			sc.Split.RecommendedTFSA.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
