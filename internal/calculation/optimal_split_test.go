package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimalSplit(t *testing.T) {
	engine := NewCalculationEngine()

	tests := []struct {
		name      string
		income    string
		budget    string
		rrspRoom  string
		tfsaRoom  string
		rrsp      string
		tfsa      string
		threshold string
		taxSaved  string
	}{
		{
			name: "top threshold", income: "137500", budget: "32000", rrspRoom: "50000", tfsaRoom: "105000",
			rrsp: "11500", tfsa: "20500", threshold: "126000", taxSaved: "5190.60985",
		},
		{
			name: "second threshold", income: "110000", budget: "20000", rrspRoom: "30000", tfsaRoom: "7000",
			rrsp: "6455", tfsa: "7000", threshold: "103545", taxSaved: "2331.384625",
		},
		{
			name: "budget smaller than gap", income: "137500", budget: "4000", rrspRoom: "50000", tfsaRoom: "105000",
			rrsp: "4000", tfsa: "0", threshold: "126000",
		},
		{
			name: "below every threshold", income: "50000", budget: "10000", rrspRoom: "20000", tfsaRoom: "6000",
			rrsp: "0", tfsa: "6000", threshold: "0", taxSaved: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := engine.OptimalSplit(d(tt.income), d(tt.budget), d(tt.rrspRoom), d(tt.tfsaRoom))

			assertDecimal(t, tt.rrsp, split.RecommendedRRSP, "rrsp")
			assertDecimal(t, tt.tfsa, split.RecommendedTFSA, "tfsa")
			assertDecimal(t, tt.threshold, split.TargetThreshold, "threshold")
			if tt.taxSaved != "" {
				assertDecimal(t, tt.taxSaved, split.TaxSaved, "taxSaved")
			}
			assert.True(t, split.RecommendedRRSP.LessThanOrEqual(d(tt.budget)))
			assert.True(t, split.RecommendedRRSP.LessThanOrEqual(d(tt.rrspRoom)))
			assert.NotEmpty(t, split.Justification)
		})
	}
}

func TestOptimalSplit_Justification(t *testing.T) {
	engine := NewCalculationEngine()

	split := engine.OptimalSplit(d("137500"), d("32000"), d("50000"), d("105000"))
	assert.Contains(t, split.Justification, "126")
	assert.Contains(t, split.Justification, "50.5 %")

	below := engine.OptimalSplit(d("40000"), d("5000"), d("5000"), d("5000"))
	assert.Equal(t, "Income is below every target threshold", below.Justification)
}

// The heuristic stops at the first threshold income exceeds. When the RRSP
// room runs out before income reaches it, lower thresholds are not
// considered and the rest of the budget goes to the TFSA.
func TestOptimalSplit_GreedyStopsAtFirstThreshold(t *testing.T) {
	engine := NewCalculationEngine()

	split := engine.OptimalSplit(d("137500"), d("32000"), d("5000"), d("105000"))

	assertDecimal(t, "5000", split.RecommendedRRSP)
	assertDecimal(t, "27000", split.RecommendedTFSA)
	assertDecimal(t, "126000", split.TargetThreshold)
	assertDecimal(t, "2285.5", split.TaxSaved)
}

func TestOptimalSplit_NegativeInputsClamp(t *testing.T) {
	engine := NewCalculationEngine()

	split := engine.OptimalSplit(d("137500"), d("-1000"), d("-5"), d("-5"))
	assert.True(t, split.RecommendedRRSP.IsZero())
	assert.True(t, split.RecommendedTFSA.IsZero())
	assert.True(t, split.TaxSaved.IsZero())
}

func TestOptimalSplit_Logs(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &TestLogger{}
	engine.SetLogger(logger)

	engine.OptimalSplit(d("137500"), d("32000"), d("50000"), d("105000"))
	assert.Len(t, logger.Debug, 1)
	assert.Contains(t, logger.Debug[0], "rrsp=11500.00")
}
