// Package tuistyles holds the lipgloss palette shared by the TUI and its
// components. It lives apart from package tui so components can import it
// without a cycle.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F25D94")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#FF5F87")
	ColorInfo      = lipgloss.Color("#3C9BDB")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#7A7A7A")
	ColorBorder     = lipgloss.Color("#44475A")

	ColorRRSP = lipgloss.Color("#F2B134")
	ColorTFSA = lipgloss.Color("#3C9BDB")
)

// bracket bar colours, lowest combined rate first
var BracketColors = []lipgloss.Color{
	lipgloss.Color("#2E7D32"),
	lipgloss.Color("#689F38"),
	lipgloss.Color("#F9A825"),
	lipgloss.Color("#EF6C00"),
	lipgloss.Color("#D84315"),
	lipgloss.Color("#B71C1C"),
	lipgloss.Color("#880E4F"),
	lipgloss.Color("#4A148C"),
}

var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	TabStyle       = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
	ActiveTabStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1).Underline(true)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorForeground)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	ParameterValueStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary)
	SliderTrackStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	InfoStyle  = lipgloss.NewStyle().Foreground(ColorInfo)

	TableHeaderStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	TableCellStyle      = lipgloss.NewStyle().Foreground(ColorForeground)
	TableHighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// MetricTrendStyle picks the colour for a change in a metric
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for a change in a metric
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// BracketColor returns the colour of the i-th zone in a bracket bar
func BracketColor(i int) lipgloss.Color {
	if i < 0 {
		i = 0
	}
	return BracketColors[i%len(BracketColors)]
}

// FormatCurrency renders an amount the way the rest of the tool does
func FormatCurrency(amount decimal.Decimal) string {
	return money.FormatMoney(amount)
}
