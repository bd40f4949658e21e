package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes results to w in the named format
func GenerateReport(w io.Writer, results *domain.ScenarioResults, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %v)", format, AvailableFormatterNames())
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// SaveConfiguration saves a configuration to a file
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

// SaveRules writes a rule set as YAML, usable as a rules override file
func SaveRules(rules domain.TaxRules, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rules); err != nil {
		return err
	}
	return enc.Close()
}
