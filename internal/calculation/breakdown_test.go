package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBracketBreakdown_HighIncome(t *testing.T) {
	calc := NewComprehensiveTaxCalculator()
	zones := calc.BracketBreakdown(d("137500"), d("25000"))

	expected := []struct {
		min, max, rate string
		inRange  bool
		deducted string
	}{
		{"15705", "17183", "0.12525", false, "0"},
		{"17183", "68963", "0.26525", false, "0"},
		{"68963", "71572", "0.31525", false, "0"},
		{"71572", "120728", "0.361175", true, "8228"},
		{"120728", "127438", "0.411175", true, "6710"},
		{"127438", "143183", "0.4571", true, "10062"},
	}

	require.Len(t, zones, len(expected))
	total := decimal.Zero
	for i, want := range expected {
		zone := zones[i]
		assertDecimal(t, want.min, zone.Min, "min ", i)
		assertDecimal(t, want.max, zone.Max, "max ", i)
		assertDecimal(t, want.rate, zone.Rate, "rate ", i)
		assert.Equal(t, want.inRange, zone.InRange, "inRange %d", i)
		assertDecimal(t, want.deducted, zone.Deducted, "deducted ", i)
		total = total.Add(zone.Deducted)
	}
	assertDecimal(t, "25000", total, "deducted amounts should cover the deduction")
}

func TestBracketBreakdown_ZonesAreContiguous(t *testing.T) {
	calc := NewComprehensiveTaxCalculator()
	zones := calc.BracketBreakdown(d("400000"), d("10000"))

	require.NotEmpty(t, zones)
	for i := 1; i < len(zones); i++ {
		assert.True(t, zones[i-1].Max.Equal(zones[i].Min), "gap between zone %d and %d", i-1, i)
		assert.True(t, zones[i].Rate.GreaterThan(zones[i-1].Rate), "rates should increase")
	}
	last := zones[len(zones)-1]
	assertDecimal(t, "999999999", last.Max)
	assertDecimal(t, "0.53305", last.Rate)
	assert.True(t, last.InRange)
	assert.False(t, zones[len(zones)-2].InRange)
}

func TestBracketBreakdown_BelowExemption(t *testing.T) {
	calc := NewComprehensiveTaxCalculator()

	zones := calc.BracketBreakdown(d("15000"), d("1000"))
	assert.NotNil(t, zones)
	assert.Empty(t, zones)
}

func TestBracketBreakdown_DeductionWithinOneZone(t *testing.T) {
	calc := NewComprehensiveTaxCalculator()

	// 60000 -> 55000 stays inside [17183, 68963); the zone reports the part
	// of it above the post-deduction income.
	zones := calc.BracketBreakdown(d("60000"), d("5000"))
	require.Len(t, zones, 2)
	assert.False(t, zones[0].InRange)
	assert.True(t, zones[1].InRange)
	assertDecimal(t, "13963", zones[1].Deducted)
}

func TestBracketBreakdown_NoDeduction(t *testing.T) {
	calc := NewComprehensiveTaxCalculator()
	zones := calc.BracketBreakdown(d("100000"), decimal.Zero)

	require.Len(t, zones, 4)
	for _, zone := range zones {
		assert.True(t, zone.Min.LessThan(d("100000")))
	}
	assertDecimal(t, "71572", zones[3].Min)
}

func TestDeductedInZone(t *testing.T) {
	before, after := d("137500"), d("112500")

	tests := []struct {
		name string
		low, high string
		expected string
	}{
		{"zone inside the deduction", "115000", "120000", "5000"},
		{"zone straddles post-deduction income", "100000", "120000", "7500"},
		{"zone straddles income", "130000", "150000", "7500"},
		{"zone below the deduction", "50000", "60000", "0"},
		{"zone above income", "140000", "150000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, deductedInZone(d(tt.low), d(tt.high), before, after))
		})
	}
}
