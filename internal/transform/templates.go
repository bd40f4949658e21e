package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in scenario templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []ScenarioTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with the common
// contribution strategies for a household. Room-dependent templates use the
// household's available RRSP and TFSA room.
func CreateBuiltInTemplates(household domain.Household) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_rrsp",
		Description: "Contribute the full available RRSP room",
		Transforms: []ScenarioTransform{
			&SetRRSPContribution{Amount: household.RRSPRoom},
		},
	})

	registry.Register(Template{
		Name:        "half_rrsp",
		Description: "Halve the RRSP contribution",
		Transforms: []ScenarioTransform{
			&ScaleContributions{Factor: decimal.NewFromFloat(0.5), RRSPOnly: true},
		},
	})

	registry.Register(Template{
		Name:        "no_rrsp",
		Description: "Skip the RRSP contribution entirely",
		Transforms: []ScenarioTransform{
			&SetRRSPContribution{Amount: decimal.Zero},
		},
	})

	registry.Register(Template{
		Name:        "tfsa_only",
		Description: "Move the whole RRSP contribution to the TFSA, up to the TFSA room",
		Transforms: []ScenarioTransform{
			&ShiftToTFSA{},
			&CapToRooms{RRSPRoom: household.RRSPRoom, TFSARoom: household.TFSARoom},
		},
	})

	registry.Register(Template{
		Name:        "max_both",
		Description: "Fill both the RRSP and the TFSA room",
		Transforms: []ScenarioTransform{
			&ApplySplit{RRSP: household.RRSPRoom, TFSA: household.TFSARoom},
		},
	})

	registry.Register(Template{
		Name:        "spread_2yr",
		Description: "Spread the RRSP deduction over 2 years",
		Transforms: []ScenarioTransform{
			&SpreadDeduction{Years: 2},
		},
	})

	registry.Register(Template{
		Name:        "spread_3yr",
		Description: "Spread the RRSP deduction over 3 years",
		Transforms: []ScenarioTransform{
			&SpreadDeduction{Years: 3},
		},
	})

	registry.Register(Template{
		Name:        "max_rrsp_spread_3yr",
		Description: "Contribute the full RRSP room and spread the deduction over 3 years",
		Transforms: []ScenarioTransform{
			&SetRRSPContribution{Amount: household.RRSPRoom},
			&SpreadDeduction{Years: 3},
		},
	})

	registry.Register(Template{
		Name:        "horizon_10yr",
		Description: "Project savings over 10 years",
		Transforms: []ScenarioTransform{
			&SetProjectionYears{Years: 10},
		},
	})

	registry.Register(Template{
		Name:        "horizon_30yr",
		Description: "Project savings over 30 years",
		Transforms: []ScenarioTransform{
			&SetProjectionYears{Years: 30},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base scenario
func ApplyTemplate(base *domain.Scenario, template Template) (*domain.Scenario, error) {
	if len(template.Transforms) == 0 {
		return base.DeepCopy(), nil
	}
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{
		"Contribution Amounts": {},
		"Deduction Timing":     {},
		"Projection Horizon":   {},
		"Other":                {},
	}

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "spread_"), strings.Contains(name, "_spread_"):
			categories["Deduction Timing"] = append(categories["Deduction Timing"], template)
		case strings.HasPrefix(name, "horizon_"):
			categories["Projection Horizon"] = append(categories["Projection Horizon"], template)
		case strings.Contains(name, "rrsp"), strings.Contains(name, "tfsa"), strings.HasPrefix(name, "max_"):
			categories["Contribution Amounts"] = append(categories["Contribution Amounts"], template)
		default:
			categories["Other"] = append(categories["Other"], template)
		}
	}

	for _, category := range []string{"Contribution Amounts", "Deduction Timing", "Projection Horizon", "Other"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-30s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  ./rrspgo compare household.yaml --with max_rrsp,tfsa_only\n")
	sb.WriteString("  ./rrspgo compare household.yaml --with spread_2yr,optimal_split\n")

	return sb.String()
}
