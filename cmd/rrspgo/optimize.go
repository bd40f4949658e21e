package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rrspgo/internal/breakeven"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/spf13/cobra"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "optimize [input-file]",
		Aliases: []string{"break-even", "solve"},
		Short:   "Find the contribution or spread that reaches a target",
		Long: `Search for the smallest RRSP contribution reaching a target, or the best
number of years to spread the deduction over.

Goals:
  match_refund        smallest contribution whose refund reaches --refund
  reach_marginal      smallest contribution bringing the marginal rate to --rate
  match_benefit_gain  smallest contribution whose benefit gain reaches --benefit-gain
  maximize_refund     spread length with the largest total refund
  all                 every goal a target flag is given for, plus the spread search

Examples:
  ./rrspgo optimize household.yaml --goal match_refund --refund 8000
  ./rrspgo optimize household.yaml --goal reach_marginal --rate 0.41
  ./rrspgo optimize household.yaml --goal all --refund 8000 --rate 0.41
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rules, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			scenarioName, _ := cmd.Flags().GetString("scenario")
			base, err := pickScenario(cfg, scenarioName)
			if err != nil {
				return err
			}

			constraints, err := constraintsFromFlags(cmd)
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(newEngine(cmd, rules))
			ctx := context.Background()
			format, _ := cmd.Flags().GetString("format")
			goal, _ := cmd.Flags().GetString("goal")

			if goal == "all" {
				result, err := solver.OptimizeMultiDimensional(ctx, base, cfg, constraints)
				if err != nil {
					return err
				}
				return writeMulti(cmd, result, format)
			}

			target := breakeven.OptimizeRRSPContribution
			if breakeven.OptimizationGoal(goal) == breakeven.GoalMaximizeRefund {
				target = breakeven.OptimizeSpreadYears
			}
			result, err := solver.Optimize(ctx, breakeven.OptimizationRequest{
				BaseScenario: base,
				Config:       cfg,
				Target:       target,
				Goal:         breakeven.OptimizationGoal(goal),
				Constraints:  constraints,
			})
			if err != nil {
				return err
			}
			solver.CompareToBase(result)
			return writeResult(cmd, result, format)
		},
	}

	cmd.Flags().String("scenario", "", "Scenario to optimize (default: the first scenario)")
	cmd.Flags().String("goal", string(breakeven.GoalMatchRefund), "Goal: match_refund, reach_marginal, match_benefit_gain, maximize_refund or all")
	cmd.Flags().String("refund", "", "Target first-year refund in dollars")
	cmd.Flags().String("rate", "", "Target marginal rate as a fraction, e.g. 0.41")
	cmd.Flags().String("benefit-gain", "", "Target benefit gain in dollars")
	cmd.Flags().String("min", "", "Smallest contribution to consider")
	cmd.Flags().String("max", "", "Largest contribution to consider (default: the RRSP room)")
	cmd.Flags().Int("max-spread", 5, "Longest spread to try for maximize_refund")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	addRulesFlags(cmd)
	return cmd
}

func pickScenario(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	if name == "" {
		return &cfg.Scenarios[0], nil
	}
	for i := range cfg.Scenarios {
		if cfg.Scenarios[i].Name == name {
			return &cfg.Scenarios[i], nil
		}
	}
	return nil, fmt.Errorf("scenario %s not found in configuration", name)
}

func constraintsFromFlags(cmd *cobra.Command) (breakeven.Constraints, error) {
	c := breakeven.DefaultConstraints()

	var err error
	if c.TargetRefund, err = optionalDecimalFlag(cmd, "refund"); err != nil {
		return c, err
	}
	if c.TargetRate, err = optionalDecimalFlag(cmd, "rate"); err != nil {
		return c, err
	}
	if c.TargetBenefitGain, err = optionalDecimalFlag(cmd, "benefit-gain"); err != nil {
		return c, err
	}
	lower, err := optionalDecimalFlag(cmd, "min")
	if err != nil {
		return c, err
	}
	if lower != nil {
		c.MinContribution = lower
	}
	if c.MaxContribution, err = optionalDecimalFlag(cmd, "max"); err != nil {
		return c, err
	}
	maxSpread, _ := cmd.Flags().GetInt("max-spread")
	c.MaxSpreadYears = &maxSpread

	return c, nil
}

func writeResult(cmd *cobra.Command, result *breakeven.OptimizationResult, format string) error {
	switch strings.ToLower(format) {
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	case "table", "console", "":
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
	return nil
}

func writeMulti(cmd *cobra.Command, result *breakeven.MultiDimensionalResult, format string) error {
	switch strings.ToLower(format) {
	case "json":
		out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	case "table", "console", "":
		fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
	default:
		return fmt.Errorf("unknown output format: %s (valid: table, json)", format)
	}
	return nil
}
