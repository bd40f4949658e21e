package transform

import (
	"testing"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateHousehold() domain.Household {
	return domain.Household{
		Salary:   decimal.NewFromInt(90000),
		RRSPRoom: decimal.NewFromInt(16200),
		TFSARoom: decimal.NewFromInt(7000),
	}
}

func TestBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates(templateHousehold())

	tmpl, ok := registry.Get("MAX_RRSP")
	require.True(t, ok)
	result, err := ApplyTemplate(baseScenario(), tmpl)
	require.NoError(t, err)
	assert.True(t, result.RRSPContribution.Equal(decimal.NewFromInt(16200)))

	tmpl, ok = registry.Get("max_both")
	require.True(t, ok)
	result, err = ApplyTemplate(baseScenario(), tmpl)
	require.NoError(t, err)
	assert.True(t, result.TFSAContribution.Equal(decimal.NewFromInt(7000)))

	tmpl, ok = registry.Get("max_rrsp_spread_3yr")
	require.True(t, ok)
	result, err = ApplyTemplate(baseScenario(), tmpl)
	require.NoError(t, err)
	assert.Equal(t, 3, result.SpreadYears)

	tmpl, ok = registry.Get("half_rrsp")
	require.True(t, ok)
	result, err = ApplyTemplate(baseScenario(), tmpl)
	require.NoError(t, err)
	assert.True(t, result.RRSPContribution.Equal(decimal.NewFromInt(5000)))
	assert.True(t, result.TFSAContribution.Equal(decimal.NewFromInt(2000)))

	tmpl, ok = registry.Get("tfsa_only")
	require.True(t, ok)
	result, err = ApplyTemplate(baseScenario(), tmpl)
	require.NoError(t, err)
	assert.True(t, result.RRSPContribution.IsZero())
	assert.True(t, result.TFSAContribution.Equal(decimal.NewFromInt(7000)))

	_, ok = registry.Get("postpone_1yr")
	assert.False(t, ok)
}

func TestApplyTemplate_NoTransforms(t *testing.T) {
	base := baseScenario()
	result, err := ApplyTemplate(base, Template{Name: "identity"})
	require.NoError(t, err)
	assert.Equal(t, *base, *result)
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"max_rrsp", "tfsa_only"}, ParseTemplateList(" max_rrsp, ,tfsa_only "))
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates(templateHousehold()))
	assert.Contains(t, help, "Contribution Amounts:")
	assert.Contains(t, help, "Deduction Timing:")
	assert.Contains(t, help, "spread_2yr")
	assert.Contains(t, help, "horizon_30yr")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
