package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpreadSavings(t *testing.T) {
	engine := NewCalculationEngine()
	spread := engine.SpreadSavings(d("137500"), d("30000"), d("30000"), 3)

	require.Len(t, spread.Years, 3)
	for i, year := range spread.Years {
		assert.Equal(t, i+1, year.Year)
		assertDecimal(t, "10000", year.Contribution)
		assertDecimal(t, "4571", year.Saved)
		assertDecimal(t, "0.4571", year.AverageRate)
	}
	assertDecimal(t, "13713", spread.TotalSaved)
	assertDecimal(t, "12135.94735", spread.OneShotSaved)
	assertDecimal(t, "1577.05265", spread.Difference)
	assert.True(t, spread.SpreadIsBetter)
}

func TestSpreadSavings_LimitedByRoom(t *testing.T) {
	engine := NewCalculationEngine()
	spread := engine.SpreadSavings(d("137500"), d("30000"), d("15000"), 3)

	require.Len(t, spread.Years, 3)
	for _, year := range spread.Years {
		assertDecimal(t, "5000", year.Contribution)
		assertDecimal(t, "2285.5", year.Saved)
	}
	assertDecimal(t, "6856.5", spread.TotalSaved)
}

func TestSpreadSavings_SingleYear(t *testing.T) {
	engine := NewCalculationEngine()
	spread := engine.SpreadSavings(d("137500"), d("25000"), d("30000"), 0)

	require.Len(t, spread.Years, 1)
	assertDecimal(t, "25000", spread.Years[0].Contribution)
	assertDecimal(t, "10330.0723", spread.TotalSaved)
	assert.True(t, spread.Difference.IsZero())
	assert.False(t, spread.SpreadIsBetter)
}

func TestSpreadSavings_ZeroContribution(t *testing.T) {
	engine := NewCalculationEngine()
	spread := engine.SpreadSavings(d("80000"), d("0"), d("10000"), 2)

	require.Len(t, spread.Years, 2)
	for _, year := range spread.Years {
		assert.True(t, year.Saved.IsZero())
		assert.True(t, year.AverageRate.IsZero())
	}
	assert.False(t, spread.SpreadIsBetter)
}
