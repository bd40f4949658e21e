package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// CSVDetailedExporter provides the yearly projection per scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioResults) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "ActualYear", "RRSP", "RRSPNet", "TFSA", "TFSANet", "RRSPAhead"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	for _, sc := range scenarios {
		for _, yr := range sc.Projection {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				intToString(results.TaxYear + yr.Year),
				yr.RRSP.StringFixed(2),
				yr.RRSPNet.StringFixed(2),
				yr.TFSA.StringFixed(2),
				yr.TFSANet.StringFixed(2),
				boolToString(yr.RRSPNet.GreaterThan(yr.TFSANet)),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
