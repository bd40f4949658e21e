package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rrspgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// SliderUnit selects how a slider value is displayed
type SliderUnit int

const (
	UnitMoney SliderUnit = iota
	UnitYears
)

// ParameterSlider displays an adjustable input with a visual track
type ParameterSlider struct {
	Key         string
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Unit        SliderUnit
	Width       int
	IsFocused   bool
	Description string
}

// NewMoneySlider creates a slider over a dollar amount
func NewMoneySlider(key, label string, value, max, step decimal.Decimal) *ParameterSlider {
	return &ParameterSlider{
		Key:   key,
		Label: label,
		Value: value,
		Min:   decimal.Zero,
		Max:   max,
		Step:  step,
		Unit:  UnitMoney,
		Width: 30,
	}
}

// NewYearsSlider creates a slider over a whole number of years
func NewYearsSlider(key, label string, value, min, max int) *ParameterSlider {
	return &ParameterSlider{
		Key:   key,
		Label: label,
		Value: decimal.NewFromInt(int64(value)),
		Min:   decimal.NewFromInt(int64(min)),
		Max:   decimal.NewFromInt(int64(max)),
		Step:  decimal.NewFromInt(1),
		Unit:  UnitYears,
		Width: 30,
	}
}

// WithDescription adds a help line below the track
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// WithWidth sets the track width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves the value up one step, stopping at Max
func (p *ParameterSlider) Increment() {
	p.SetValue(p.Value.Add(p.Step))
}

// Decrement moves the value down one step, stopping at Min
func (p *ParameterSlider) Decrement() {
	p.SetValue(p.Value.Sub(p.Step))
}

// SetValue sets the value, clamped to [Min, Max]
func (p *ParameterSlider) SetValue(value decimal.Decimal) {
	p.Value = decimal.Max(p.Min, decimal.Min(p.Max, value))
}

// SetMax changes the upper bound and re-clamps the value
func (p *ParameterSlider) SetMax(max decimal.Decimal) {
	if max.LessThan(p.Min) {
		max = p.Min
	}
	p.Max = max
	p.SetValue(p.Value)
}

// Int returns the value truncated to an int, for year sliders
func (p *ParameterSlider) Int() int {
	return int(p.Value.IntPart())
}

// Percentage returns the position of the value within the range, 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

func (p *ParameterSlider) format(v decimal.Decimal) string {
	if p.Unit == UnitYears {
		n := v.IntPart()
		if n == 1 {
			return "1 year"
		}
		return fmt.Sprintf("%d years", n)
	}
	return money.FormatMoney(v)
}

// Render returns the full multi-line slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.format(p.Value)))
	content.WriteString("\n")
	content.WriteString(p.renderTrack(p.Width))

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString("\n")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s  ─  %s", p.format(p.Min), p.format(p.Max))))

	if p.Description != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(p.Description))
	}

	return content.String()
}

// RenderCompact returns a single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = "▸ "
	}

	label := labelStyle.Width(18).Render(p.Label)
	value := valueStyle.Width(14).Align(lipgloss.Right).Render(p.format(p.Value))
	return marker + label + " " + value + " " + p.renderTrack(16)
}

func (p *ParameterSlider) renderTrack(width int) string {
	if width < 2 {
		width = 2
	}
	pos := int(p.Percentage()*float64(width-1) + 0.5)
	if pos < 0 {
		pos = 0
	}
	if pos > width-1 {
		pos = width - 1
	}

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := width - 1 - pos; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
