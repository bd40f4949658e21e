package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/rgehrsitz/rrspgo/internal/output"
	"github.com/spf13/cobra"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Calculate every scenario of a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, rules, err := loadConfiguration(cmd, args[0])
			if err != nil {
				return err
			}

			engine := newEngine(cmd, rules)
			results, err := engine.RunScenarios(context.Background(), cfg)
			if err != nil {
				return err
			}
			results.Assumptions = output.Assumptions(rules)

			format, _ := cmd.Flags().GetString("format")
			save, _ := cmd.Flags().GetBool("save")
			if save {
				f := output.GetFormatterByName(format)
				if f == nil {
					return fmt.Errorf("unsupported format: %s (available: %s)", format,
						strings.Join(output.AvailableFormatterNames(), ", "))
				}
				filename, err := output.WriteFormatted(f, results, output.FileExtension(format))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", filename)
				return nil
			}

			return output.GenerateReport(cmd.OutOrStdout(), results, format)
		},
	}

	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	addRulesFlags(cmd)
	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, _, err := loadConfiguration(cmd, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("rules", "", "Path to a rules override file to validate alongside")
	return cmd
}

func exampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example [output-file]",
		Short: "Generate an example configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			example := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(example, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration saved to %s\n", args[0])
			return nil
		},
	}
}

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the tax rules in effect as YAML",
		Long: `Print the tax rules in effect as YAML. The output is a valid rules
override file: edit it and pass it back with --rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := loadRulesOverride(cmd)
			if err != nil {
				return err
			}
			return output.SaveRules(config.ResolveRules(nil, override), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("rules", "", "Path to a rules override file (default: rules.yaml if it exists)")
	return cmd
}
