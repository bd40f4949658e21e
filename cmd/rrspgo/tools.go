package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/rgehrsitz/rrspgo/internal/output"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// quickCmd builds a flag-only command that runs one calculation against the
// rules in effect
func quickCmd(use, short string, run func(cmd *cobra.Command, engine *calculation.CalculationEngine) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			override, err := loadRulesOverride(cmd)
			if err != nil {
				return err
			}
			return run(cmd, newEngine(cmd, config.ResolveRules(nil, override)))
		},
	}
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	addRulesFlags(cmd)
	return cmd
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func taxCmd() *cobra.Command {
	cmd := quickCmd("tax", "Tax owed on an income, and the refund of a deduction",
		func(cmd *cobra.Command, engine *calculation.CalculationEngine) error {
			income, err := decimalFlag(cmd, "income")
			if err != nil {
				return err
			}
			deduction, err := decimalFlag(cmd, "deduction")
			if err != nil {
				return err
			}
			if deduction.IsNegative() {
				return fmt.Errorf("deduction cannot be negative")
			}

			result := struct {
				Income        decimal.Decimal `json:"income"`
				Federal       decimal.Decimal `json:"federal"`
				Provincial    decimal.Decimal `json:"provincial"`
				Total         decimal.Decimal `json:"total"`
				MarginalRate  decimal.Decimal `json:"marginalRate"`
				Deduction     decimal.Decimal `json:"deduction"`
				TaxSaved      decimal.Decimal `json:"taxSaved"`
				MarginalAfter decimal.Decimal `json:"marginalAfter"`
			}{
				Income:        income,
				Federal:       engine.FederalTax(income),
				Provincial:    engine.ProvincialTax(income),
				Total:         engine.TotalTax(income),
				MarginalRate:  engine.MarginalRate(income),
				Deduction:     deduction,
				TaxSaved:      engine.TaxCalc.CalculateTaxSavings(income, deduction),
				MarginalAfter: engine.MarginalRate(income.Sub(deduction)),
			}
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), result)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Income:          %s\n", money.FormatMoney(result.Income))
			fmt.Fprintf(w, "Federal tax:     %s\n", money.FormatMoney(result.Federal))
			fmt.Fprintf(w, "Quebec tax:      %s\n", money.FormatMoney(result.Provincial))
			fmt.Fprintf(w, "Total tax:       %s\n", money.FormatMoney(result.Total))
			fmt.Fprintf(w, "Marginal rate:   %s\n", money.FormatPercent(result.MarginalRate))
			if deduction.IsPositive() {
				fmt.Fprintf(w, "Deduction:       %s\n", money.FormatMoney(deduction))
				fmt.Fprintf(w, "Tax saved:       %s\n", money.FormatMoney(result.TaxSaved))
				fmt.Fprintf(w, "Marginal after:  %s\n", money.FormatPercent(result.MarginalAfter))
			}
			return nil
		})
	cmd.Flags().String("income", "", "Taxable income")
	cmd.Flags().String("deduction", "0", "RRSP deduction")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func bracketsCmd() *cobra.Command {
	cmd := quickCmd("brackets", "Combined federal and Quebec rate zones covered by a deduction",
		func(cmd *cobra.Command, engine *calculation.CalculationEngine) error {
			income, err := decimalFlag(cmd, "income")
			if err != nil {
				return err
			}
			deduction, err := decimalFlag(cmd, "deduction")
			if err != nil {
				return err
			}

			zones := engine.BracketBreakdown(income, deduction)
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), zones)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-16s %-16s %8s %14s\n", "From", "To", "Rate", "Deducted")
			for _, z := range zones {
				marker := ""
				if z.InRange {
					marker = " *"
				}
				fmt.Fprintf(w, "%-16s %-16s %8s %14s%s\n", money.FormatMoney(z.Min), output.FormatZoneMax(z.Max),
					money.FormatPercent(z.Rate), money.FormatMoney(z.Deducted), marker)
			}
			return nil
		})
	cmd.Flags().String("income", "", "Taxable income")
	cmd.Flags().String("deduction", "0", "RRSP deduction")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func projectCmd() *cobra.Command {
	cmd := quickCmd("project", "Project RRSP and TFSA deposits over a number of years",
		func(cmd *cobra.Command, engine *calculation.CalculationEngine) error {
			rrsp, err := decimalFlag(cmd, "rrsp")
			if err != nil {
				return err
			}
			tfsa, err := decimalFlag(cmd, "tfsa")
			if err != nil {
				return err
			}
			years, _ := cmd.Flags().GetInt("years")
			if years <= 0 {
				years = engine.Rules.Projection.DefaultYears
			}

			data := engine.Projection(rrsp, tfsa, years)
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), data)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%4s %16s %16s %16s\n", "Year", "RRSP", "RRSP after tax", "TFSA")
			for _, y := range data {
				fmt.Fprintf(w, "%4d %16s %16s %16s\n", y.Year, money.FormatMoney(y.RRSP),
					money.FormatMoney(y.RRSPNet), money.FormatMoney(y.TFSANet))
			}
			return nil
		})
	cmd.Flags().String("rrsp", "0", "Yearly RRSP deposit")
	cmd.Flags().String("tfsa", "0", "Yearly TFSA deposit")
	cmd.Flags().Int("years", 0, "Number of years (default from the rules)")
	return cmd
}

func splitCmd() *cobra.Command {
	cmd := quickCmd("split", "Recommend how to split a savings budget between RRSP and TFSA",
		func(cmd *cobra.Command, engine *calculation.CalculationEngine) error {
			values := map[string]decimal.Decimal{}
			for _, name := range []string{"income", "budget", "rrsp-room", "tfsa-room"} {
				v, err := decimalFlag(cmd, name)
				if err != nil {
					return err
				}
				values[name] = v
			}

			split := engine.OptimalSplit(values["income"], values["budget"], values["rrsp-room"], values["tfsa-room"])
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), split)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "RRSP:       %s\n", money.FormatMoney(split.RecommendedRRSP))
			fmt.Fprintf(w, "TFSA:       %s\n", money.FormatMoney(split.RecommendedTFSA))
			fmt.Fprintf(w, "Tax saved:  %s\n", money.FormatMoney(split.TaxSaved))
			fmt.Fprintln(w, split.Justification)
			return nil
		})
	cmd.Flags().String("income", "", "Taxable income")
	cmd.Flags().String("budget", "", "Total amount to save")
	cmd.Flags().String("rrsp-room", "0", "Available RRSP room")
	cmd.Flags().String("tfsa-room", "0", "Available TFSA room")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("budget")
	return cmd
}

func spreadCmd() *cobra.Command {
	cmd := quickCmd("spread", "Compare one deduction against spreading it over several years",
		func(cmd *cobra.Command, engine *calculation.CalculationEngine) error {
			income, err := decimalFlag(cmd, "income")
			if err != nil {
				return err
			}
			contribution, err := decimalFlag(cmd, "contribution")
			if err != nil {
				return err
			}
			room, err := decimalFlag(cmd, "room")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("room") {
				room = contribution
			}
			years, _ := cmd.Flags().GetInt("years")
			if years < 1 || years > 10 {
				return fmt.Errorf("years must be between 1 and 10")
			}

			cmp := engine.SpreadSavings(income, contribution, room, years)
			if wantJSON(cmd) {
				return printJSON(cmd.OutOrStdout(), cmp)
			}

			w := cmd.OutOrStdout()
			for _, y := range cmp.Years {
				fmt.Fprintf(w, "Year %d: deduct %s, saves %s (%s)\n", y.Year, money.FormatMoney(y.Contribution),
					money.FormatMoney(y.Saved), money.FormatPercent(y.AverageRate))
			}
			fmt.Fprintf(w, "Spread total:   %s\n", money.FormatMoney(cmp.TotalSaved))
			fmt.Fprintf(w, "One deduction:  %s\n", money.FormatMoney(cmp.OneShotSaved))
			fmt.Fprintf(w, "Difference:     %s\n", money.FormatSignedMoney(cmp.Difference))
			return nil
		})
	cmd.Flags().String("income", "", "Taxable income, assumed the same every year")
	cmd.Flags().String("contribution", "", "Total RRSP contribution to deduct")
	cmd.Flags().String("room", "", "RRSP room (default: the contribution)")
	cmd.Flags().Int("years", 2, "Number of years to spread over")
	_ = cmd.MarkFlagRequired("income")
	_ = cmd.MarkFlagRequired("contribution")
	return cmd
}
