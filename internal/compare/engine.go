package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/transform"
)

// OptimalSplitTemplate names the template that applies the engine's
// recommended RRSP/TFSA split to the base budget.
const OptimalSplitTemplate = "optimal_split"

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // List of template names to apply
}

// findScenario returns the named scenario, or the first one when name is empty
func findScenario(config *domain.Configuration, name string) *domain.Scenario {
	if name == "" && len(config.Scenarios) > 0 {
		return &config.Scenarios[0]
	}
	for i := range config.Scenarios {
		if config.Scenarios[i].Name == name {
			return &config.Scenarios[i]
		}
	}
	return nil
}

// TemplatesFor builds the template registry for a household, including the
// optimal split for the given base scenario's budget.
func (ce *CompareEngine) TemplatesFor(household domain.Household, base *domain.Scenario) *transform.TemplateRegistry {
	registry := transform.CreateBuiltInTemplates(household)

	split := ce.CalcEngine.OptimalSplit(household.TotalIncome(),
		base.RRSPContribution.Add(base.TFSAContribution), household.RRSPRoom, household.TFSARoom)
	registry.Register(transform.Template{
		Name:        OptimalSplitTemplate,
		Description: "Apply the recommended split: " + split.Justification,
		Transforms: []transform.ScenarioTransform{
			&transform.ApplySplit{RRSP: split.RecommendedRRSP, TFSA: split.RecommendedTFSA},
		},
	})
	return registry
}

// Compare runs multiple scenario comparisons
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	baseScenario := findScenario(config, options.BaseScenarioName)
	if baseScenario == nil {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	ce.TemplateRegistry = ce.TemplatesFor(config.Household, baseScenario)

	baseSummary := ce.CalcEngine.RunScenario(config.Household, *baseScenario)
	baseResult := ce.MetricsCalculator.CalculateMetrics(&baseSummary)
	baseResult.Description = baseScenario.Description

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modifiedScenario, err := transform.ApplyTemplate(baseScenario, template)
		if err == nil {
			err = transform.CheckRooms(baseScenario, modifiedScenario, config.Household)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		modifiedScenario.Name = baseScenario.Name + "_" + templateName

		altSummary := ce.CalcEngine.RunScenario(config.Household, *modifiedScenario)

		altResult := ce.MetricsCalculator.CalculateMetrics(&altSummary)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenario.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger.Infof("compared %s against %d alternative(s)", baseScenario.Name, len(alternatives))
	return compSet, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	base := findScenario(config, baseScenarioName)
	if base == nil {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}

	baseSummary := ce.CalcEngine.RunScenario(config.Household, *base)
	baseResult := ce.MetricsCalculator.CalculateMetrics(&baseSummary)
	baseResult.Description = base.Description

	alternatives := []ComparisonResult{}

	for _, altName := range alternativeScenarioNames {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}

		alt := findScenario(config, altName)
		if alt == nil || altName == "" {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altSummary := ce.CalcEngine.RunScenario(config.Household, *alt)
		altResult := ce.MetricsCalculator.CalculateMetrics(&altSummary)
		altResult.Description = alt.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
