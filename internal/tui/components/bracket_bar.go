package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// BracketBar draws the combined marginal-rate zones below an income as a
// horizontal bar, with the part covered by the deduction shaded
type BracketBar struct {
	Brackets []domain.CombinedBracket
	Income   decimal.Decimal
	Width    int
}

// NewBracketBar creates a bar for the zones below income
func NewBracketBar(brackets []domain.CombinedBracket, income decimal.Decimal) *BracketBar {
	return &BracketBar{
		Brackets: brackets,
		Income:   income,
		Width:    60,
	}
}

// WithWidth sets the bar width in cells
func (b *BracketBar) WithWidth(width int) *BracketBar {
	b.Width = width
	return b
}

// Segments returns the number of cells each zone occupies. Zones are
// clipped at the income; every zone gets at least one cell.
func (b *BracketBar) Segments() []int {
	cells := make([]int, len(b.Brackets))
	if len(b.Brackets) == 0 || !b.Income.IsPositive() {
		return cells
	}

	width := decimal.NewFromInt(int64(b.Width))
	used := 0
	for i, z := range b.Brackets {
		span := decimal.Min(z.Max, b.Income).Sub(z.Min)
		n := int(span.Div(b.Income).Mul(width).Round(0).IntPart())
		if n < 1 {
			n = 1
		}
		cells[i] = n
		used += n
	}

	// the widest zone absorbs rounding
	if diff := b.Width - used; diff != 0 {
		widest := 0
		for i := range cells {
			if cells[i] > cells[widest] {
				widest = i
			}
		}
		if cells[widest]+diff >= 1 {
			cells[widest] += diff
		}
	}
	return cells
}

// Render returns the bar followed by one line per zone
func (b *BracketBar) Render() string {
	if len(b.Brackets) == 0 {
		return tuistyles.InfoStyle.Render("No taxable income")
	}

	var bar strings.Builder
	for i, n := range b.Segments() {
		z := b.Brackets[i]
		style := lipgloss.NewStyle().Foreground(tuistyles.BracketColor(i))
		if z.Deducted.IsPositive() {
			bar.WriteString(style.Render(strings.Repeat("▒", n)))
		} else {
			bar.WriteString(style.Render(strings.Repeat("█", n)))
		}
	}

	var rows strings.Builder
	rows.WriteString("  " + tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-26s %8s %14s", "Zone", "Rate", "Deducted")))
	for i, z := range b.Brackets {
		zone := money.FormatMoney(z.Min) + " +"
		if z.Max.LessThan(domain.UnboundedIncome) {
			zone = money.FormatMoney(z.Min) + " – " + money.FormatMoney(z.Max)
		}
		line := fmt.Sprintf("%-26s %8s %14s", zone, money.FormatPercent(z.Rate), money.FormatMoney(z.Deducted))

		style := tuistyles.TableCellStyle
		if z.InRange {
			style = tuistyles.TableHighlightStyle
		}
		swatch := lipgloss.NewStyle().Foreground(tuistyles.BracketColor(i)).Render("■ ")
		rows.WriteString("\n" + swatch + style.Render(line))
	}

	return bar.String() + "\n\n" + rows.String()
}
