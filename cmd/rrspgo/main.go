package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rrspgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// newRootCmd builds the command tree. Tests build a fresh tree per case so
// flag values never leak between runs.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rrspgo",
		Short: "RRSP / TFSA tax calculator CLI",
		Long: `Federal and Quebec tax calculator for RRSP and TFSA planning.

Computes the refund of an RRSP deduction, the marginal rates before and after,
the income-tested benefits it unlocks, a long-term projection and the
recommended split of a savings budget between RRSP and TFSA.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		exampleCmd(),
		rulesCmd(),
		compareCmd(),
		transformsCmd(),
		optimizeCmd(),
		taxCmd(),
		bracketsCmd(),
		projectCmd(),
		splitCmd(),
		spreadCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

// loadConfiguration reads an input file and resolves the rules it runs with.
// The --rules flag overrides the defaults; inline rules win over both. When
// no flag is given, rules.yaml in the working directory is used if present.
func loadConfiguration(cmd *cobra.Command, inputFile string) (*domain.Configuration, domain.TaxRules, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return nil, domain.TaxRules{}, err
	}

	override, err := loadRulesOverride(cmd)
	if err != nil {
		return nil, domain.TaxRules{}, err
	}
	return cfg, config.ResolveRules(cfg, override), nil
}

func loadRulesOverride(cmd *cobra.Command) (*domain.TaxRules, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	if rulesFile == "" {
		if !fileExists("rules.yaml") {
			return nil, nil
		}
		rulesFile = "rules.yaml"
	}

	rules, err := config.NewInputParser().LoadRulesFromFile(rulesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules from %s: %w", rulesFile, err)
	}
	return rules, nil
}

// newEngine builds an engine for rules, with debug logging to stderr when
// --debug is set
func newEngine(cmd *cobra.Command, rules domain.TaxRules) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithRules(rules)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(calculation.NewStdLogger(cmd.ErrOrStderr(), true))
		engine.Debug = true
	}
	return engine
}

// decimalFlag reads a string flag holding an amount
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s value %q: %w", name, raw, err)
	}
	return d, nil
}

// optionalDecimalFlag is decimalFlag for flags whose absence matters
func optionalDecimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := decimalFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func addRulesFlags(cmd *cobra.Command) {
	cmd.Flags().String("rules", "", "Path to a rules override file (default: rules.yaml if it exists)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
