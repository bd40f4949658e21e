package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/domain"
)

func TestParameterSliderClamps(t *testing.T) {
	s := NewMoneySlider("rrsp", "RRSP", decimal.NewFromInt(900), decimal.NewFromInt(1000), decimal.NewFromInt(500))

	s.Increment()
	if !s.Value.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Increment past max: got %s, want 1000", s.Value)
	}

	s.Decrement()
	s.Decrement()
	s.Decrement()
	if !s.Value.IsZero() {
		t.Errorf("Decrement past min: got %s, want 0", s.Value)
	}

	s.SetValue(decimal.NewFromInt(800))
	s.SetMax(decimal.NewFromInt(600))
	if !s.Value.Equal(decimal.NewFromInt(600)) {
		t.Errorf("SetMax should clamp the value: got %s", s.Value)
	}
}

func TestYearsSlider(t *testing.T) {
	s := NewYearsSlider("spread", "Spread", 1, 1, 10)
	if got := s.format(s.Value); got != "1 year" {
		t.Errorf("format(1) = %q", got)
	}
	s.Increment()
	if s.Int() != 2 {
		t.Errorf("Int() = %d, want 2", s.Int())
	}
	if got := s.format(s.Value); got != "2 years" {
		t.Errorf("format(2) = %q", got)
	}
	if p := s.Percentage(); p <= 0.1 || p >= 0.12 {
		t.Errorf("Percentage() = %f, want 1/9", p)
	}
}

func TestBracketBarSegmentsFillWidth(t *testing.T) {
	engine := calculation.NewCalculationEngine()
	income := decimal.NewFromInt(137500)
	bar := NewBracketBar(engine.BracketBreakdown(income, decimal.NewFromInt(25000)), income).WithWidth(60)

	total := 0
	for _, n := range bar.Segments() {
		if n < 1 {
			t.Errorf("every zone needs at least one cell, got %d", n)
		}
		total += n
	}
	if total != 60 {
		t.Errorf("segments cover %d cells, want 60", total)
	}
	if !strings.Contains(bar.Render(), "Zone") {
		t.Error("Render should include the zone table")
	}
}

func TestBracketBarEmpty(t *testing.T) {
	bar := NewBracketBar(nil, decimal.Zero)
	if !strings.Contains(bar.Render(), "No taxable income") {
		t.Errorf("unexpected render for empty bar: %q", bar.Render())
	}
}

func TestProjectionChart(t *testing.T) {
	years := calculation.NewCalculationEngine().Projection(decimal.NewFromInt(1000), decimal.NewFromInt(500), 5)
	chart := NewProjectionChart(years)

	if len(chart.Series) != 2 || len(chart.Labels) != len(years) {
		t.Fatalf("expected 2 series over %d years, got %d series, %d labels",
			len(years), len(chart.Series), len(chart.Labels))
	}
	out := chart.Render()
	for _, want := range []string{"RRSP (net)", "TFSA", "Y0"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart output missing %q", want)
		}
	}
}

func TestSinglePointChart(t *testing.T) {
	chart := NewProjectionChart([]domain.ProjectionYear{{Year: 0}})
	if chart.Render() == "" {
		t.Error("single point chart rendered nothing")
	}
}

func TestMoneyTrend(t *testing.T) {
	card := NewMoneyCard("Tax after", decimal.NewFromInt(100)).WithMoneyTrend(decimal.NewFromInt(-50), true)
	if card.Trend == nil || !card.Trend.IsPositive {
		t.Error("a drop in tax should be shown as an improvement")
	}
	if NewMoneyCard("x", decimal.Zero).WithMoneyTrend(decimal.Zero, false).Trend != nil {
		t.Error("a zero change should not add a trend")
	}
}

func TestParameterSliderRender(t *testing.T) {
	s := NewMoneySlider("rrsp", "RRSP", decimal.NewFromInt(500), decimal.NewFromInt(1000), decimal.NewFromInt(500)).
		WithDescription("capped by room").
		WithWidth(40)

	out := s.Render()
	for _, want := range []string{"RRSP", "capped by room", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q:\n%s", want, out)
		}
	}
	if s.Width != 40 {
		t.Errorf("Width = %d, want 40", s.Width)
	}
	if strings.Contains(s.RenderCompact(), "capped by room") {
		t.Error("RenderCompact() should not show the description")
	}
}

func TestMetricCardCompact(t *testing.T) {
	card := NewMoneyCard("RRSP", decimal.NewFromInt(100)).WithWidth(30)
	if card.Width != 30 {
		t.Errorf("Width = %d, want 30", card.Width)
	}

	out := card.RenderCompact()
	if !strings.Contains(out, "RRSP:") {
		t.Errorf("RenderCompact() = %q", out)
	}
	if strings.Contains(out, "╭") {
		t.Error("RenderCompact() should not draw a border")
	}
}
