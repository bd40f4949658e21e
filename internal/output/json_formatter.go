package output

import (
	"encoding/json"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// JSONFormatter serializes the scenario results as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioResults) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
