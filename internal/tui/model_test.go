package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

func testConfig() *domain.Configuration {
	return &domain.Configuration{
		Household: domain.Household{
			Salary:   decimal.NewFromInt(137500),
			RRSPRoom: decimal.NewFromInt(30000),
			TFSARoom: decimal.NewFromInt(20000),
		},
		Scenarios: []domain.Scenario{
			{
				Name:             "max_rrsp",
				RRSPContribution: decimal.NewFromInt(25000),
				TFSAContribution: decimal.NewFromInt(7000),
				SpreadYears:      1,
			},
			{
				Name:             "tfsa_only",
				TFSAContribution: decimal.NewFromInt(20000),
			},
		},
	}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModelWithConfig(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	require.NotNil(t, m.Summary())
	assert.Equal(t, "max_rrsp", m.Scenario().Name)
	assert.Equal(t, "10330.07", m.Summary().TaxSaved.StringFixed(2))
	assert.Equal(t, SceneCalculator, m.CurrentScene())
	assert.Nil(t, m.Init())
}

func TestConfigLoadedMsg(t *testing.T) {
	m := NewModel("household.yaml")
	assert.NotNil(t, m.Init())
	assert.Nil(t, m.Summary())

	m = send(t, m, ConfigLoadedMsg{Config: testConfig()})
	require.NotNil(t, m.Summary())
	assert.Equal(t, "max_rrsp", m.Summary().Name)
}

func TestErrorMsgIsShown(t *testing.T) {
	m := send(t, NewModel("missing.yaml"), ErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), "Error: "+assert.AnError.Error())
}

func TestSliderAdjustsContribution(t *testing.T) {
	m := NewModelWithConfig(testConfig())
	before := m.Summary().TaxSaved

	// salary -> rental -> rrsp
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})

	assert.True(t, m.Scenario().RRSPContribution.Equal(decimal.NewFromInt(25500)))
	assert.True(t, m.Summary().TaxSaved.GreaterThan(before))
}

func TestContributionCappedByRoom(t *testing.T) {
	m := NewModelWithConfig(testConfig())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, runes("]"), runes("]"))

	assert.True(t, m.Scenario().RRSPContribution.Equal(decimal.NewFromInt(30000)))
}

func TestLoweringRoomClampsContribution(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	// focus the RRSP room slider and drop it well below the contribution
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	for i := 0; i < 3; i++ {
		m = send(t, m, runes("["))
	}

	assert.True(t, m.Household().RRSPRoom.Equal(decimal.NewFromInt(15000)))
	assert.True(t, m.Scenario().RRSPContribution.Equal(decimal.NewFromInt(15000)))
}

func TestApplySuggestedSplit(t *testing.T) {
	m := send(t, NewModelWithConfig(testConfig()), runes("a"))

	assert.True(t, m.Scenario().RRSPContribution.Equal(decimal.NewFromInt(11500)))
	assert.True(t, m.Scenario().TFSAContribution.Equal(decimal.NewFromInt(20000)))
}

func TestNextScenarioAndReset(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	m = send(t, m, runes("n"))
	assert.Equal(t, "tfsa_only", m.Scenario().Name)
	assert.True(t, m.Summary().TaxSaved.IsZero())

	m = send(t, m, runes("n"))
	assert.Equal(t, "max_rrsp", m.Scenario().Name)

	m = send(t, m, runes("a"), runes("r"))
	assert.True(t, m.Scenario().RRSPContribution.Equal(decimal.NewFromInt(25000)))
}

func TestTabNavigation(t *testing.T) {
	m := NewModelWithConfig(testConfig())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, SceneBrackets, m.CurrentScene())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, SceneAdvice, m.CurrentScene())

	m = send(t, m, runes("?"))
	assert.Equal(t, SceneHelp, m.CurrentScene())
	m = send(t, m, runes("?"))
	assert.Equal(t, SceneAdvice, m.CurrentScene())
}

func TestQuit(t *testing.T) {
	_, cmd := NewModelWithConfig(testConfig()).Update(runes("q"))
	assert.NotNil(t, cmd)
}

func TestViewsRender(t *testing.T) {
	m := send(t, NewModelWithConfig(testConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})

	cases := map[Scene]string{
		SceneCalculator: "Tax saved",
		SceneBrackets:   "Deducted",
		SceneProjection: "RRSP after tax",
		SceneAdvice:     "Suggested split",
		SceneHelp:       "How it works",
	}
	for scene, want := range cases {
		m.scene = scene
		view := m.View()
		assert.True(t, strings.Contains(view, want), "%s view should contain %q", scene, want)
	}
}

func TestCalculatorShowsFocusedSliderDetail(t *testing.T) {
	m := send(t, NewModelWithConfig(testConfig()), tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "Employment income")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	view := m.View()
	assert.Contains(t, view, "capped by the RRSP room")
	assert.NotContains(t, view, "Employment income")
}

func TestAdviceShowsSplitCards(t *testing.T) {
	m := NewModelWithConfig(testConfig())
	m.scene = SceneAdvice

	view := m.View()
	assert.Contains(t, view, "RRSP:")
	assert.Contains(t, view, "TFSA:")
}
