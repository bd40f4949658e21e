package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeSliders()
		return m, nil

	case ConfigLoadedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.scene == SceneHelp {
			m.scene = m.previousScene
		} else {
			m.previousScene = m.scene
			m.scene = SceneHelp
		}
		m.help.ShowAll = m.scene == SceneHelp
		return m, nil
	}

	// nothing below is usable until a configuration is loaded
	if m.engine == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextTab):
		m.scene = m.stepTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.scene = m.stepTab(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Left):
		m.adjust(-1)
	case key.Matches(msg, m.keys.Right):
		m.adjust(1)
	case key.Matches(msg, m.keys.BigLeft):
		m.adjust(-10)
	case key.Matches(msg, m.keys.BigRight):
		m.adjust(10)
	case key.Matches(msg, m.keys.Split):
		m.applySuggestedSplit()
	case key.Matches(msg, m.keys.Reset):
		m.selectScenario(m.scenarioIndex)
	case key.Matches(msg, m.keys.Scenario):
		next := 0
		if m.config != nil && len(m.config.Scenarios) > 0 {
			next = (m.scenarioIndex + 1) % len(m.config.Scenarios)
		}
		m.selectScenario(next)
	}

	return m, nil
}

// stepTab returns the scene dir tabs away, wrapping around. From the help
// screen it steps relative to the scene help was opened from.
func (m Model) stepTab(dir int) Scene {
	current := m.scene
	if current == SceneHelp {
		current = m.previousScene
	}
	idx := 0
	for i, s := range tabs {
		if s == current {
			idx = i
		}
	}
	idx = (idx + dir + len(tabs)) % len(tabs)
	return tabs[idx]
}

func (m *Model) moveFocus(dir int) {
	if len(m.sliders) == 0 {
		return
	}
	m.sliders[m.focus].SetFocused(false)
	m.focus = (m.focus + dir + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focus].SetFocused(true)
}

// adjust moves the focused slider by steps and recomputes
func (m *Model) adjust(steps int) {
	if len(m.sliders) == 0 {
		return
	}
	s := m.sliders[m.focus]
	for i := 0; i < abs(steps); i++ {
		if steps > 0 {
			s.Increment()
		} else {
			s.Decrement()
		}
	}
	m.syncFromSliders()
	m.recalculate()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
