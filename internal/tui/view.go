package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/tui/components"
	"github.com/rgehrsitz/rrspgo/internal/tui/tuistyles"
	"github.com/rgehrsitz/rrspgo/pkg/money"
)

// View implements tea.Model
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) +
			"\n\n" + tuistyles.SubtitleStyle.Render("press q to quit"))
	}
	if m.loading || m.summary == nil {
		return m.renderApp(tuistyles.InfoStyle.Render("Loading configuration..."))
	}

	var content string
	switch m.scene {
	case SceneCalculator:
		content = m.renderCalculator()
	case SceneBrackets:
		content = m.renderBrackets()
	case SceneProjection:
		content = m.renderProjection()
	case SceneAdvice:
		content = m.renderAdvice()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("RRSPGO · RRSP / TFSA calculator")

	var tabsRow []string
	for _, s := range tabs {
		style := tuistyles.TabStyle
		if s == m.scene {
			style = tuistyles.ActiveTabStyle
		}
		tabsRow = append(tabsRow, style.Render(s.String()))
	}

	name := m.scenario.Name
	if name == "" {
		name = "custom"
	}
	crumb := tuistyles.SubtitleStyle.Render("scenario: " + name)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", crumb),
		strings.Join(tabsRow, " "),
	)
}

func (m Model) renderStatusBar() string {
	return tuistyles.StatusBarStyle.Render(m.help.View(m.keys))
}

// renderCalculator shows the sliders beside the headline figures
func (m Model) renderCalculator() string {
	var inputs []string
	for _, s := range m.sliders {
		inputs = append(inputs, s.RenderCompact())
	}
	left := tuistyles.ActiveBorderStyle.Render(strings.Join(inputs, "\n"))
	detail := tuistyles.BorderStyle.Render(m.sliders[m.focus].Render())

	s := m.summary
	cards := []*components.MetricCard{
		components.NewMoneyCard("Tax saved", s.TaxSaved).
			WithDescription(money.FormatPercent(s.AverageDeductionRate) + " per dollar"),
		components.NewMoneyCard("Tax after", s.TaxAfter).
			WithMoneyTrend(s.TaxAfter.Sub(s.TaxBefore), true),
		components.NewRateCard("Marginal rate", s.MarginalAfter).
			WithDescription("was " + money.FormatPercent(s.MarginalBefore)),
		components.NewMoneyCard("Benefits gained", s.FamilyAllowance.TotalGain.Add(s.Credits.TotalGain)),
	}
	right := components.MetricGrid(cards, 2)

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right),
		detail,
	)
}

func (m Model) renderBrackets() string {
	s := m.summary
	header := tuistyles.SubtitleStyle.Render(fmt.Sprintf("Taxable income %s, deduction %s, after %s",
		money.FormatMoney(s.TotalIncome), money.FormatMoney(s.RRSPContribution),
		money.FormatMoney(s.IncomeAfterDeduction)))

	width := m.width - 10
	if width < 20 {
		width = 20
	}
	if width > 80 {
		width = 80
	}
	bar := components.NewBracketBar(s.Brackets, s.TotalIncome).WithWidth(width)

	return header + "\n\n" + bar.Render()
}

func (m Model) renderProjection() string {
	s := m.summary
	if len(s.Projection) == 0 {
		return tuistyles.InfoStyle.Render("No projection")
	}

	width := m.width - 6
	if width < 40 {
		width = 40
	}
	chart := components.NewProjectionChart(s.Projection).WithSize(width, 12)

	cardWidth := (width - 6) / 3
	if cardWidth < 18 {
		cardWidth = 18
	}
	last := s.Projection[len(s.Projection)-1]
	cards := []*components.MetricCard{
		components.NewMoneyCard("RRSP gross", last.RRSP).WithWidth(cardWidth),
		components.NewMoneyCard("RRSP after tax", last.RRSPNet).WithWidth(cardWidth),
		components.NewMoneyCard("TFSA", last.TFSANet).WithWidth(cardWidth),
	}

	return chart.Render() + "\n\n" + components.MetricGrid(cards, 3)
}

// renderAdvice shows the split recommendation, spread comparison and
// benefit changes
func (m Model) renderAdvice() string {
	s := m.summary
	var b strings.Builder

	b.WriteString(tuistyles.TableHeaderStyle.Render("Suggested split"))
	b.WriteString("\n")
	splitCards := []*components.MetricCard{
		components.NewMoneyCard("RRSP", s.Split.RecommendedRRSP),
		components.NewMoneyCard("TFSA", s.Split.RecommendedTFSA),
		components.NewMoneyCard("Tax saved", s.Split.TaxSaved).
			WithMoneyTrend(s.Split.TaxSaved.Sub(s.TaxSaved), false),
	}
	for i, c := range splitCards {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(c.RenderCompact())
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(s.Split.Justification))
	b.WriteString("\n\n")

	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("Spreading over %d years", len(s.Spread.Years))))
	b.WriteString("\n")
	for _, y := range s.Spread.Years {
		fmt.Fprintf(&b, "year %d  %14s  saves %14s  (%s)\n", y.Year, money.FormatMoney(y.Contribution),
			money.FormatMoney(y.Saved), money.FormatPercent(y.AverageRate))
	}
	verdict := "one deduction is as good or better"
	style := tuistyles.MetricNegativeStyle
	if s.Spread.SpreadIsBetter {
		verdict = "spreading is better by " + money.FormatMoney(s.Spread.Difference)
		style = tuistyles.MetricPositiveStyle
	}
	b.WriteString(style.Render(verdict))
	b.WriteString("\n\n")

	b.WriteString(tuistyles.TableHeaderStyle.Render("Benefits"))
	b.WriteString("\n")
	impacts := append([]domain.BenefitImpact{s.FamilyAllowance.ChildBenefit, s.FamilyAllowance.FamilyAllowance},
		s.Credits.Credits...)
	shown := 0
	for _, bi := range impacts {
		if !bi.Applicable() {
			continue
		}
		shown++
		fmt.Fprintf(&b, "%-28s %14s → %14s  %s\n", bi.Name, money.FormatMoney(bi.Before),
			money.FormatMoney(bi.After), tuistyles.MetricTrendStyle(!bi.Gain.IsNegative()).Render(money.FormatSignedMoney(bi.Gain)))
	}
	if shown == 0 {
		b.WriteString(tuistyles.SubtitleStyle.Render("no income-tested benefit applies"))
	}

	return b.String()
}

func (m Model) renderHelp() string {
	lines := []string{
		tuistyles.TableHeaderStyle.Render("How it works"),
		"Move between inputs with ↑/↓ and change them with ←/→.",
		"Every change reruns the scenario: federal and Quebec tax with and without",
		"the RRSP deduction, the benefits that depend on family income, the",
		"projection and the suggested split between RRSP and TFSA.",
		"",
		"Press a to move the current budget to the suggested split, n to load the",
		"next scenario of the configuration file and r to discard your edits.",
	}
	return strings.Join(lines, "\n")
}
