package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxProjectionYears bounds the projection horizon accepted from input files
const MaxProjectionYears = 60

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a household and its scenarios from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Inline rules start from the defaults so a document can override a
	// single section.
	if config.Rules != nil {
		rules, err := ip.parseRules(data, "rules")
		if err != nil {
			return nil, err
		}
		config.Rules = rules
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ParseJSON is Parse for a JSON document. Inline rules are decoded over the
// defaults, as they are from YAML.
func (ip *InputParser) ParseJSON(data []byte) (*domain.Configuration, error) {
	var doc struct {
		domain.Configuration
		Rules json.RawMessage `json:"rules"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	config := doc.Configuration
	config.Rules = nil
	if len(doc.Rules) > 0 && string(doc.Rules) != "null" {
		rules := domain.DefaultTaxRules()
		if err := json.Unmarshal(doc.Rules, &rules); err != nil {
			return nil, fmt.Errorf("failed to parse rules JSON: %w", err)
		}
		config.Rules = &rules
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// LoadRulesFromFile loads a rules override. Sections missing from the file
// keep their default values.
func (ip *InputParser) LoadRulesFromFile(filename string) (*domain.TaxRules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", filename, err)
	}
	return ip.parseRules(data, "")
}

// parseRules decodes rules over the defaults, either from the whole document
// or from one of its top-level keys
func (ip *InputParser) parseRules(data []byte, key string) (*domain.TaxRules, error) {
	rules := domain.DefaultTaxRules()

	if key == "" {
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
		}
	} else {
		var doc map[string]yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
		}
		node, ok := doc[key]
		if ok {
			if err := node.Decode(&rules); err != nil {
				return nil, fmt.Errorf("failed to parse rules YAML: %w", err)
			}
		}
	}

	if err := ip.ValidateRules(&rules); err != nil {
		return nil, fmt.Errorf("rules validation failed: %w", err)
	}
	return &rules, nil
}

// ResolveRules returns the rules a configuration should run with: its inline
// rules, then the override, then the defaults
func ResolveRules(config *domain.Configuration, override *domain.TaxRules) domain.TaxRules {
	switch {
	case config != nil && config.Rules != nil:
		return *config.Rules
	case override != nil:
		return *override
	default:
		return domain.DefaultTaxRules()
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.ValidateHousehold(&config.Household); err != nil {
		return fmt.Errorf("household validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(&scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	if config.Rules != nil {
		if err := ip.ValidateRules(config.Rules); err != nil {
			return fmt.Errorf("rules validation failed: %w", err)
		}
	}
	return nil
}

// ValidateHousehold checks that every amount and count is non-negative
func (ip *InputParser) ValidateHousehold(h *domain.Household) error {
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"salary", h.Salary},
		{"rental income", h.RentalIncome},
		{"spouse income", h.SpouseIncome},
		{"RRSP room", h.RRSPRoom},
		{"TFSA room", h.TFSARoom},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}

	if h.ChildrenUnder6 < 0 || h.Children6To17 < 0 {
		return fmt.Errorf("number of children cannot be negative")
	}
	if !h.Couple && h.SpouseIncome.IsPositive() {
		return fmt.Errorf("spouse income requires couple: true")
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if scenario.RRSPContribution.IsNegative() {
		return fmt.Errorf("RRSP contribution cannot be negative")
	}
	if scenario.TFSAContribution.IsNegative() {
		return fmt.Errorf("TFSA contribution cannot be negative")
	}
	if scenario.SpreadYears < 0 {
		return fmt.Errorf("spread years cannot be negative")
	}
	if scenario.ProjectionYears < 0 || scenario.ProjectionYears > MaxProjectionYears {
		return fmt.Errorf("projection years must be between 0 and %d", MaxProjectionYears)
	}
	return nil
}

// ValidateRules checks the structural invariants the engine relies on
func (ip *InputParser) ValidateRules(rules *domain.TaxRules) error {
	if rules.Metadata.TaxYear < 2000 || rules.Metadata.TaxYear > 2100 {
		return fmt.Errorf("rules tax year %d seems invalid", rules.Metadata.TaxYear)
	}
	if err := validateTable(rules.Federal); err != nil {
		return fmt.Errorf("federal table: %w", err)
	}
	if err := validateTable(rules.Provincial); err != nil {
		return fmt.Errorf("provincial table: %w", err)
	}
	if !isRate(rules.FederalAbatement) {
		return fmt.Errorf("federal abatement must be between 0 and 1")
	}

	if rules.Projection.AnnualReturn.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("annual return cannot be -100%% or lower")
	}
	if !isRate(rules.Projection.WithdrawalTaxRate) {
		return fmt.Errorf("withdrawal tax rate must be between 0 and 1")
	}
	if rules.Projection.DefaultYears < 0 || rules.Projection.DefaultYears > MaxProjectionYears {
		return fmt.Errorf("default projection years must be between 0 and %d", MaxProjectionYears)
	}

	for i := 1; i < len(rules.SplitTargets); i++ {
		if !rules.SplitTargets[i].Threshold.LessThan(rules.SplitTargets[i-1].Threshold) {
			return fmt.Errorf("split targets must be sorted by descending threshold")
		}
	}

	cb := rules.ChildBenefit
	if len(cb.ClawbackBy) == 0 || len(cb.ClawbackBy) > domain.MaxClawbackChildren {
		return fmt.Errorf("child benefit needs between 1 and %d clawback rate pairs", domain.MaxClawbackChildren)
	}
	if cb.Threshold2.LessThan(cb.Threshold1) {
		return fmt.Errorf("child benefit second threshold is below the first")
	}

	maximums := []decimal.Decimal{
		cb.MaxUnder6, cb.Max6To17,
		rules.FamilyAllowance.MaxPerChild,
		rules.SalesTaxCredit.PerAdult, rules.SalesTaxCredit.PerChild,
		rules.SolidarityCredit.QSTPerAdult, rules.SolidarityCredit.HousingSingle,
		rules.SolidarityCredit.HousingCouple, rules.SolidarityCredit.HousingPerChild,
		rules.WorkersBenefit.Single.Maximum, rules.WorkersBenefit.Family.Maximum,
		rules.WorkPremium.Single.Maximum, rules.WorkPremium.Family.Maximum,
	}
	for _, m := range maximums {
		if m.IsNegative() {
			return fmt.Errorf("benefit maximums cannot be negative")
		}
	}
	return nil
}

// validateTable checks that brackets start at 0, are contiguous and end unbounded
func validateTable(table domain.BracketTable) error {
	if len(table.Brackets) == 0 {
		return fmt.Errorf("tax brackets are required")
	}
	if table.PersonalAmount.IsNegative() {
		return fmt.Errorf("personal amount cannot be negative")
	}
	if !table.Brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0")
	}
	for i, b := range table.Brackets {
		if !isRate(b.Rate) {
			return fmt.Errorf("bracket %d rate must be between 0 and 1", i)
		}
		if !b.Max.GreaterThan(b.Min) {
			return fmt.Errorf("bracket %d is empty", i)
		}
		if i > 0 && !b.Min.Equal(table.Brackets[i-1].Max) {
			return fmt.Errorf("bracket %d does not start where bracket %d ends", i, i-1)
		}
	}
	if !table.Brackets[len(table.Brackets)-1].IsUnbounded() {
		return fmt.Errorf("last bracket must be unbounded (max %s)", domain.UnboundedIncome.String())
	}
	return nil
}

func isRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(1))
}
