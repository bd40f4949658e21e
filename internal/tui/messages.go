package tui

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// Scene is one tab of the calculator
type Scene int

const (
	SceneCalculator Scene = iota
	SceneBrackets
	SceneProjection
	SceneAdvice
	SceneHelp
)

// tabs lists the scenes reachable with tab / shift+tab
var tabs = []Scene{SceneCalculator, SceneBrackets, SceneProjection, SceneAdvice}

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneBrackets:
		return "Brackets"
	case SceneProjection:
		return "Projection"
	case SceneAdvice:
		return "Split & Benefits"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// ConfigLoadedMsg carries a parsed configuration file
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error in the status bar
type ErrorMsg struct {
	Err error
}
