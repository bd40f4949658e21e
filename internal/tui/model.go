package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/internal/tui/components"
)

// slider keys, in display order
const (
	sliderSalary   = "salary"
	sliderRental   = "rental"
	sliderRRSP     = "rrsp"
	sliderTFSA     = "tfsa"
	sliderRRSPRoom = "rrsp_room"
	sliderTFSARoom = "tfsa_room"
	sliderSpread   = "spread"
	sliderYears    = "years"
)

// Model is the whole application state
type Model struct {
	scene         Scene
	previousScene Scene

	width  int
	height int

	configPath string
	config     *domain.Configuration
	engine     *calculation.CalculationEngine

	// the inputs the sliders edit; scenarioIndex points into config.Scenarios
	household     domain.Household
	scenario      domain.Scenario
	scenarioIndex int

	sliders []*components.ParameterSlider
	focus   int

	summary *domain.ScenarioSummary

	keys keyMap
	help help.Model

	err     error
	loading bool
}

// NewModel creates a model that loads its configuration from path on Init
func NewModel(configPath string) Model {
	return Model{
		scene:      SceneCalculator,
		configPath: configPath,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      100,
		height:     32,
		loading:    true,
	}
}

// NewModelWithConfig creates a ready model from an already parsed configuration
func NewModelWithConfig(cfg *domain.Configuration) Model {
	m := NewModel("")
	m.applyConfig(cfg)
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.config != nil || m.configPath == "" {
		return nil
	}
	return loadConfigCmd(m.configPath)
}

func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := parser.ValidateConfiguration(cfg); err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// applyConfig installs a configuration and selects its first scenario
func (m *Model) applyConfig(cfg *domain.Configuration) {
	m.config = cfg
	m.engine = calculation.NewCalculationEngineWithRules(config.ResolveRules(cfg, nil))
	m.household = cfg.Household
	m.loading = false
	m.err = nil
	m.selectScenario(0)
}

// selectScenario loads the i-th configured scenario into the sliders. A
// configuration without scenarios starts from an empty one.
func (m *Model) selectScenario(i int) {
	m.scenarioIndex = i
	if m.config != nil && i < len(m.config.Scenarios) {
		m.scenario = m.config.Scenarios[i]
	} else {
		m.scenario = domain.Scenario{Name: "custom"}
	}
	m.household = m.configHousehold()
	m.buildSliders()
	m.recalculate()
}

func (m *Model) configHousehold() domain.Household {
	if m.config == nil {
		return m.household
	}
	return m.config.Household
}

func (m *Model) buildSliders() {
	years := m.scenario.ProjectionYears
	if years == 0 {
		years = m.engine.Rules.Projection.DefaultYears
	}
	spread := m.scenario.SpreadYears
	if spread < 1 {
		spread = 1
	}

	thousand := decimal.NewFromInt(1000)
	fiveHundred := decimal.NewFromInt(500)

	m.sliders = []*components.ParameterSlider{
		components.NewMoneySlider(sliderSalary, "Salary", m.household.Salary,
			decimal.Max(decimal.NewFromInt(300000), m.household.Salary), thousand).
			WithDescription("Employment income, also the base of the work benefits"),
		components.NewMoneySlider(sliderRental, "Rental income", m.household.RentalIncome,
			decimal.Max(decimal.NewFromInt(100000), m.household.RentalIncome), fiveHundred).
			WithDescription("Net rental income, taxed but not earned income"),
		components.NewMoneySlider(sliderRRSP, "RRSP contribution", m.scenario.RRSPContribution,
			m.household.RRSPRoom, fiveHundred).
			WithDescription("Deducted from taxable income, capped by the RRSP room"),
		components.NewMoneySlider(sliderTFSA, "TFSA contribution", m.scenario.TFSAContribution,
			m.household.TFSARoom, fiveHundred).
			WithDescription("Not deductible, grows tax free"),
		components.NewMoneySlider(sliderRRSPRoom, "RRSP room", m.household.RRSPRoom,
			decimal.Max(decimal.NewFromInt(100000), m.household.RRSPRoom), fiveHundred).
			WithDescription("Deduction limit from the notice of assessment"),
		components.NewMoneySlider(sliderTFSARoom, "TFSA room", m.household.TFSARoom,
			decimal.Max(decimal.NewFromInt(150000), m.household.TFSARoom), fiveHundred).
			WithDescription("Unused TFSA contribution room"),
		components.NewYearsSlider(sliderSpread, "Spread deduction", spread, 1, 10).
			WithDescription("Claim the RRSP deduction over this many tax years"),
		components.NewYearsSlider(sliderYears, "Projection", years, 1, 60).
			WithDescription("Years of growth in the projection"),
	}
	m.resizeSliders()
	if m.focus >= len(m.sliders) {
		m.focus = 0
	}
	m.sliders[m.focus].SetFocused(true)
}

// resizeSliders fits the detail track of the focused slider to the window
func (m *Model) resizeSliders() {
	width := m.width - 12
	if width < 20 {
		width = 20
	}
	if width > 60 {
		width = 60
	}
	for _, s := range m.sliders {
		s.WithWidth(width)
	}
}

func (m *Model) slider(k string) *components.ParameterSlider {
	for _, s := range m.sliders {
		if s.Key == k {
			return s
		}
	}
	return nil
}

// syncFromSliders copies slider values back into the household and
// scenario. Contribution sliders are capped by the room sliders.
func (m *Model) syncFromSliders() {
	m.slider(sliderRRSP).SetMax(m.slider(sliderRRSPRoom).Value)
	m.slider(sliderTFSA).SetMax(m.slider(sliderTFSARoom).Value)

	m.household.Salary = m.slider(sliderSalary).Value
	m.household.RentalIncome = m.slider(sliderRental).Value
	m.household.RRSPRoom = m.slider(sliderRRSPRoom).Value
	m.household.TFSARoom = m.slider(sliderTFSARoom).Value
	m.scenario.RRSPContribution = m.slider(sliderRRSP).Value
	m.scenario.TFSAContribution = m.slider(sliderTFSA).Value
	m.scenario.SpreadYears = m.slider(sliderSpread).Int()
	m.scenario.ProjectionYears = m.slider(sliderYears).Int()
}

// recalculate reruns the scenario; it is cheap enough to do on every key
func (m *Model) recalculate() {
	if m.engine == nil {
		return
	}
	summary := m.engine.RunScenario(m.household, m.scenario)
	m.summary = &summary
}

// applySuggestedSplit moves the current budget to the recommended split
func (m *Model) applySuggestedSplit() {
	if m.summary == nil {
		return
	}
	m.slider(sliderRRSP).SetValue(m.summary.Split.RecommendedRRSP)
	m.slider(sliderTFSA).SetValue(m.summary.Split.RecommendedTFSA)
	m.syncFromSliders()
	m.recalculate()
}

// Summary returns the result for the current inputs, nil before a
// configuration is loaded
func (m Model) Summary() *domain.ScenarioSummary {
	return m.summary
}

// Scenario returns the scenario as currently edited
func (m Model) Scenario() domain.Scenario {
	return m.scenario
}

// Household returns the household as currently edited
func (m Model) Household() domain.Household {
	return m.household
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene {
	return m.scene
}
