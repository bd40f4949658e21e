package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// execute runs a fresh command tree and returns what it printed
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// exampleFile writes the example configuration to a temp dir
func exampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "household.yaml")
	if _, err := execute(t, "example", path); err != nil {
		t.Fatalf("example command failed: %v", err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "rrspgo" {
		t.Errorf("Expected root command use to be 'rrspgo', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Errorf("Expected no error for help command, got %v", err)
	}
	if !strings.Contains(out, "calculate") {
		t.Error("Expected help text to list the calculate command")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{
		"calculate",
		"validate",
		"example",
		"rules",
		"compare",
		"transforms",
		"optimize",
		"tax",
		"brackets",
		"project",
		"split",
		"spread",
		"serve",
		"version",
	}

	cmds := newRootCmd().Commands()
	for _, expected := range expectedCommands {
		found := false
		for _, c := range cmds {
			if c.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expected)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := execute(t, "invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	if _, err := execute(t, "--invalid-flag"); err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestFileExists(t *testing.T) {
	path := exampleFile(t)
	if !fileExists(path) {
		t.Errorf("Expected %s to exist", path)
	}
	if fileExists(filepath.Join(t.TempDir(), "non_existing_file.txt")) {
		t.Error("Expected non_existing_file.txt to not exist")
	}
}

func TestValidateCommand(t *testing.T) {
	path := exampleFile(t)
	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "is valid") {
		t.Errorf("unexpected output: %s", out)
	}

	if _, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestCalculateCommand_JSON(t *testing.T) {
	out, err := execute(t, "calculate", exampleFile(t), "--format", "json")
	if err != nil {
		t.Fatalf("calculate failed: %v", err)
	}
	for _, name := range []string{"lump_sum", "spread", "tfsa_first"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected output to contain scenario %q", name)
		}
	}
}

func TestCalculateCommand_UnknownFormat(t *testing.T) {
	if _, err := execute(t, "calculate", exampleFile(t), "--format", "pdf"); err == nil {
		t.Error("Expected error for an unknown format")
	}
}

func TestTaxCommand(t *testing.T) {
	out, err := execute(t, "tax", "--income", "137500", "--deduction", "25000")
	if err != nil {
		t.Fatalf("tax failed: %v", err)
	}
	want := money.FormatMoney(decimal.RequireFromString("10330.0723"))
	if !strings.Contains(out, "Tax saved:") || !strings.Contains(out, want) {
		t.Errorf("Expected tax saved %s in output:\n%s", want, out)
	}
}

func TestTaxCommand_NegativeIncome(t *testing.T) {
	out, err := execute(t, "tax", "--income=-5000", "--json")
	if err != nil {
		t.Fatalf("tax with a negative income failed: %v", err)
	}
	if !strings.Contains(out, `"total": "0"`) {
		t.Errorf("Expected zero tax in output:\n%s", out)
	}
	if _, err := execute(t, "tax", "--income", "50000", "--deduction=-1"); err == nil {
		t.Error("Expected error for a negative deduction")
	}
}

func TestTaxCommand_InvalidAmount(t *testing.T) {
	if _, err := execute(t, "tax", "--income", "lots"); err == nil {
		t.Error("Expected error for a non-numeric income")
	}
}

func TestSplitCommand_JSON(t *testing.T) {
	out, err := execute(t, "split", "--income", "137500", "--budget", "32000",
		"--rrsp-room", "30000", "--tfsa-room", "20000", "--json")
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}

	var split domain.OptimalSplit
	if err := json.Unmarshal([]byte(out), &split); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if !split.RecommendedRRSP.Equal(decimal.NewFromInt(11500)) || !split.RecommendedTFSA.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("split = %s / %s, want 11500 / 20000", split.RecommendedRRSP, split.RecommendedTFSA)
	}
}

func TestProjectCommand_JSON(t *testing.T) {
	out, err := execute(t, "project", "--rrsp", "1000", "--tfsa", "500", "--years", "2", "--json")
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}

	var years []domain.ProjectionYear
	if err := json.Unmarshal([]byte(out), &years); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(years) != 3 {
		t.Fatalf("expected years 0..2, got %d entries", len(years))
	}
	if !years[2].RRSP.Equal(decimal.RequireFromString("2214.9")) {
		t.Errorf("year 2 RRSP = %s, want 2214.9", years[2].RRSP)
	}
}

func TestSpreadCommand_YearsBounds(t *testing.T) {
	if _, err := execute(t, "spread", "--income", "137500", "--contribution", "25000", "--years", "11"); err == nil {
		t.Error("Expected error for more than 10 years")
	}
	out, err := execute(t, "spread", "--income", "137500", "--contribution", "25000", "--years", "2")
	if err != nil {
		t.Fatalf("spread failed: %v", err)
	}
	if !strings.Contains(out, "Year 2:") {
		t.Errorf("Expected a line per year:\n%s", out)
	}
}

func TestBracketsCommand(t *testing.T) {
	out, err := execute(t, "brackets", "--income", "137500", "--deduction", "25000")
	if err != nil {
		t.Fatalf("brackets failed: %v", err)
	}
	if !strings.Contains(out, "Deducted") || !strings.Contains(out, "*") {
		t.Errorf("Expected a zone table with covered zones marked:\n%s", out)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", exampleFile(t), "--with", "tfsa_only,optimal_split", "--format", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"lump_sum_tfsa_only", "lump_sum_optimal_split"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in output:\n%s", want, out)
		}
	}
}

func TestCompareCommand_AgainstOtherScenarios(t *testing.T) {
	out, err := execute(t, "compare", exampleFile(t), "--format", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "tfsa_first") {
		t.Errorf("Expected the other scenarios in output:\n%s", out)
	}
}

func TestCompareCommand_Apply(t *testing.T) {
	out, err := execute(t, "compare", exampleFile(t), "--apply", "set_rrsp:amount=10000;spread:years=2", "--format", "csv")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "lump_sum_custom") {
		t.Errorf("Expected the custom scenario in output:\n%s", out)
	}

	if _, err := execute(t, "compare", exampleFile(t), "--apply", "bogus:x=1"); err == nil {
		t.Error("Expected error for an unknown transform")
	}

	_, err = execute(t, "compare", exampleFile(t), "--apply", "adjust_rrsp:delta=1000000")
	if err == nil || !strings.Contains(err.Error(), "exceeds the available room") {
		t.Errorf("Expected a room error, got %v", err)
	}
}

func TestCompareCommand_ListTemplates(t *testing.T) {
	out, err := execute(t, "compare", "--list-templates")
	if err != nil {
		t.Fatalf("compare --list-templates failed: %v", err)
	}
	if !strings.Contains(out, "max_rrsp") {
		t.Errorf("Expected template list:\n%s", out)
	}
}

func TestCompareCommand_RequiresFile(t *testing.T) {
	if _, err := execute(t, "compare"); err == nil {
		t.Error("Expected error without an input file")
	}
}

func TestOptimizeCommand(t *testing.T) {
	out, err := execute(t, "optimize", exampleFile(t), "--goal", "reach_marginal", "--rate", "0.41", "--format", "json")
	if err != nil {
		t.Fatalf("optimize failed: %v", err)
	}
	if !strings.Contains(out, `"success": true`) {
		t.Errorf("Expected a successful search:\n%s", out)
	}
}

func TestOptimizeCommand_MissingTarget(t *testing.T) {
	if _, err := execute(t, "optimize", exampleFile(t), "--goal", "match_refund"); err == nil {
		t.Error("Expected error when --refund is missing")
	}
}

func TestOptimizeCommand_UnknownScenario(t *testing.T) {
	if _, err := execute(t, "optimize", exampleFile(t), "--scenario", "nope", "--refund", "1000"); err == nil {
		t.Error("Expected error for an unknown scenario")
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	if err != nil {
		t.Fatalf("rules failed: %v", err)
	}
	if !strings.Contains(out, "tax_year: 2024") {
		t.Errorf("Expected the default rules:\n%s", out)
	}
}

func TestTransformsCommand(t *testing.T) {
	out, err := execute(t, "transforms")
	if err != nil {
		t.Fatalf("transforms failed: %v", err)
	}
	for _, name := range []string{"set_rrsp", "shift_to_tfsa", "set_years"} {
		if !strings.Contains(out, name) {
			t.Errorf("Expected transform %q in output", name)
		}
	}
}
