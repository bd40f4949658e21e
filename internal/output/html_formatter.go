package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":    FormatCurrency,
	"signed":  FormatSignedCurrency,
	"pct":     FormatPercentage,
	"zoneMax": FormatZoneMax,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.ScenarioResults) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioResults
		Recommendation Recommendation
	}{results, AnalyzeScenarios(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
