package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rrspgo/internal/compare"
	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a base scenario against templates or other scenarios",
		Long: `Compare a base scenario against alternative contribution strategies.

Without --with or --apply the base is compared against every other scenario
of the file.

Examples:
  ./rrspgo compare household.yaml --base lump_sum --with tfsa_only,spread_3yr
  ./rrspgo compare household.yaml --with optimal_split --format csv
  ./rrspgo compare household.yaml --apply "set_rrsp:amount=10000;spread:years=2"
  ./rrspgo compare --list-templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				household := domain.Household{}
				if len(args) == 1 {
					cfg, err := config.NewInputParser().LoadFromFile(args[0])
					if err != nil {
						return err
					}
					household = cfg.Household
				}
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates(household)))
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
			}

			cfg, rules, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			baseName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			applyStr, _ := cmd.Flags().GetString("apply")

			engine := compare.NewCompareEngine(newEngine(cmd, rules))
			ctx := context.Background()

			var set *compare.ComparisonSet
			switch {
			case templatesStr != "":
				templates := transform.ParseTemplateList(templatesStr)
				if len(templates) == 0 {
					return fmt.Errorf("no valid templates specified in --with flag")
				}
				set, err = engine.Compare(ctx, cfg, compare.CompareOptions{
					BaseScenarioName: baseName,
					Templates:        templates,
				})
			case applyStr != "":
				custom, cerr := customScenario(cfg, baseName, applyStr)
				if cerr != nil {
					return cerr
				}
				cfg.Scenarios = append(cfg.Scenarios, *custom)
				set, err = engine.CompareScenarios(ctx, cfg, baseName, []string{custom.Name})
			default:
				set, err = engine.CompareScenarios(ctx, cfg, baseName, otherScenarios(cfg, baseName))
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			set.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			return writeComparison(cmd, set, format)
		},
	}

	cmd.Flags().String("base", "", "Base scenario name (default: the first scenario)")
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().String("apply", "", "Semicolon-separated transforms building a custom alternative, e.g. set_rrsp:amount=10000")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	addRulesFlags(cmd)
	return cmd
}

// customScenario applies transform specs to the base scenario
func customScenario(cfg *domain.Configuration, baseName, specs string) (*domain.Scenario, error) {
	base := cfg.Scenarios[0]
	if baseName != "" {
		found := false
		for _, s := range cfg.Scenarios {
			if s.Name == baseName {
				base, found = s, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("base scenario %s not found in configuration", baseName)
		}
	}

	registry := transform.NewTransformRegistry()
	var transforms []transform.ScenarioTransform
	for _, spec := range strings.Split(specs, ";") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		transforms = append(transforms, t)
	}
	if len(transforms) == 0 {
		return nil, fmt.Errorf("no valid transforms specified in --apply flag")
	}

	custom, err := transform.ApplyWithinRooms(&base, cfg.Household, transforms)
	if err != nil {
		return nil, err
	}
	custom.Name = base.Name + "_custom"
	custom.Description = "Custom: " + specs
	return custom, nil
}

func otherScenarios(cfg *domain.Configuration, baseName string) []string {
	if baseName == "" && len(cfg.Scenarios) > 0 {
		baseName = cfg.Scenarios[0].Name
	}
	var names []string
	for _, s := range cfg.Scenarios {
		if s.Name != baseName {
			names = append(names, s.Name)
		}
	}
	return names
}

func writeComparison(cmd *cobra.Command, set *compare.ComparisonSet, format string) error {
	w := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "csv":
		out, err := (&compare.CSVFormatter{}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(w, out)
	case "json":
		out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(w, out)
	case "table", "console", "":
		fmt.Fprint(w, (&compare.TableFormatter{}).Format(set))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}
	return nil
}

func transformsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transforms",
		Short: "List the transforms usable with compare --apply",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Available Transforms:")
			fmt.Fprintln(w)
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(w, "  %-16s %s\n", name, transformUsage[name])
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Usage:")
			fmt.Fprintln(w, `  ./rrspgo compare household.yaml --apply "set_rrsp:amount=10000;spread:years=2"`)
		},
	}
}

var transformUsage = map[string]string{
	"set_rrsp":      "amount=N       set the RRSP contribution",
	"adjust_rrsp":   "delta=N        add to the RRSP contribution (floored at zero)",
	"shift_to_tfsa": "amount=N       move RRSP dollars to the TFSA (0 moves all)",
	"scale":         "factor=F       scale both contributions",
	"apply_split":   "rrsp=N,tfsa=N  set both contributions",
	"spread":        "years=N        spread the deduction over 1 to 10 years",
	"set_years":     "years=N        set the projection horizon",
}
