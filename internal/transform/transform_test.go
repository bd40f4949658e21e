package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseScenario() *domain.Scenario {
	return &domain.Scenario{
		Name:             "Base",
		RRSPContribution: decimal.NewFromInt(10000),
		TFSAContribution: decimal.NewFromInt(2000),
		ProjectionYears:  20,
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := baseScenario()

	result, err := ApplyTransforms(base, []ScenarioTransform{
		&AdjustRRSPContribution{Delta: decimal.NewFromInt(5000)},
		&ShiftToTFSA{Amount: decimal.NewFromInt(3000)},
		&SpreadDeduction{Years: 2},
	})
	require.NoError(t, err)

	assert.True(t, result.RRSPContribution.Equal(decimal.NewFromInt(12000)))
	assert.True(t, result.TFSAContribution.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 2, result.SpreadYears)

	// base untouched
	assert.True(t, base.RRSPContribution.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 0, base.SpreadYears)
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := baseScenario()
	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.Equal(t, *base, *result)
	assert.NotSame(t, base, result)
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(nil, nil)
	assert.Error(t, err)

	_, err = ApplyTransforms(baseScenario(), []ScenarioTransform{nil})
	assert.Contains(t, err.Error(), "index 0 is nil")

	_, err = ApplyTransforms(baseScenario(), []ScenarioTransform{
		&ShiftToTFSA{Amount: decimal.NewFromInt(50000)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shift_to_tfsa validation failed")

	var te *TransformError
	assert.True(t, errors.As(err, &te))
	assert.Equal(t, "validate", te.Operation)
}

func TestContributionTransforms(t *testing.T) {
	tests := []struct {
		name      string
		transform ScenarioTransform
		wantRRSP  int64
		wantTFSA  int64
	}{
		{"set", &SetRRSPContribution{Amount: decimal.NewFromInt(7000)}, 7000, 2000},
		{"adjust down floors at zero", &AdjustRRSPContribution{Delta: decimal.NewFromInt(-15000)}, 0, 2000},
		{"shift all", &ShiftToTFSA{}, 0, 12000},
		{"scale", &ScaleContributions{Factor: decimal.NewFromFloat(1.5)}, 15000, 3000},
		{"scale rrsp only", &ScaleContributions{Factor: decimal.NewFromFloat(0.5), RRSPOnly: true}, 5000, 2000},
		{"cap to rooms", &CapToRooms{RRSPRoom: decimal.NewFromInt(6000), TFSARoom: decimal.NewFromInt(9000)}, 6000, 2000},
		{"apply split", &ApplySplit{RRSP: decimal.NewFromInt(4000), TFSA: decimal.NewFromInt(8000)}, 4000, 8000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.transform.Validate(baseScenario()))
			result, err := tt.transform.Apply(baseScenario())
			require.NoError(t, err)
			assert.True(t, result.RRSPContribution.Equal(decimal.NewFromInt(tt.wantRRSP)), "rrsp %s", result.RRSPContribution)
			assert.True(t, result.TFSAContribution.Equal(decimal.NewFromInt(tt.wantTFSA)), "tfsa %s", result.TFSAContribution)
			assert.NotEmpty(t, tt.transform.Description())
		})
	}
}

func TestApplyWithinRooms(t *testing.T) {
	household := domain.Household{
		RRSPRoom: decimal.NewFromInt(30000),
		TFSARoom: decimal.NewFromInt(20000),
	}
	base := &domain.Scenario{
		Name:             "Base",
		RRSPContribution: decimal.NewFromInt(10000),
		TFSAContribution: decimal.NewFromInt(5000),
	}
	registry := NewTransformRegistry()

	for _, spec := range []string{
		"adjust_rrsp:delta=1000000",
		"scale:factor=50",
		"set_rrsp:amount=900000",
		"apply_split:rrsp=1000,tfsa=25000",
	} {
		t.Run(spec, func(t *testing.T) {
			tr, err := registry.ParseTransformSpec(spec)
			require.NoError(t, err)
			_, err = ApplyWithinRooms(base, household, []ScenarioTransform{tr})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exceeds the available room")
		})
	}

	tr, err := registry.ParseTransformSpec("set_rrsp:amount=30000")
	require.NoError(t, err)
	result, err := ApplyWithinRooms(base, household, []ScenarioTransform{tr})
	require.NoError(t, err)
	assert.True(t, result.RRSPContribution.Equal(decimal.NewFromInt(30000)))
}

func TestCheckRooms_KeepsBaseOverRoom(t *testing.T) {
	household := domain.Household{RRSPRoom: decimal.NewFromInt(5000), TFSARoom: decimal.NewFromInt(5000)}
	base := baseScenario()

	result, err := ApplyWithinRooms(base, household, []ScenarioTransform{&SetProjectionYears{Years: 10}})
	require.NoError(t, err)
	assert.True(t, result.RRSPContribution.Equal(decimal.NewFromInt(10000)))

	_, err = ApplyWithinRooms(base, household, []ScenarioTransform{&AdjustRRSPContribution{Delta: decimal.NewFromInt(1)}})
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	base := baseScenario()

	assert.Error(t, (&SetRRSPContribution{Amount: decimal.NewFromInt(-1)}).Validate(base))
	assert.Error(t, (&ScaleContributions{Factor: decimal.NewFromInt(-2)}).Validate(base))
	assert.Error(t, (&ApplySplit{RRSP: decimal.NewFromInt(-1)}).Validate(base))
	assert.Error(t, (&SpreadDeduction{Years: 0}).Validate(base))
	assert.Error(t, (&SpreadDeduction{Years: 11}).Validate(base))
	assert.Error(t, (&SetProjectionYears{Years: 61}).Validate(base))
	assert.Error(t, (&AdjustRRSPContribution{}).Validate(nil))

	assert.NoError(t, (&SpreadDeduction{Years: 10}).Validate(base))
	assert.NoError(t, (&SetProjectionYears{Years: 1}).Validate(base))
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("set_rrsp:amount=12500")
	require.NoError(t, err)
	assert.Equal(t, "set_rrsp", tr.Name())
	assert.True(t, tr.(*SetRRSPContribution).Amount.Equal(decimal.NewFromInt(12500)))

	tr, err = registry.ParseTransformSpec("apply_split: rrsp = 3000 , tfsa = 7000")
	require.NoError(t, err)
	split := tr.(*ApplySplit)
	assert.True(t, split.RRSP.Equal(decimal.NewFromInt(3000)))
	assert.True(t, split.TFSA.Equal(decimal.NewFromInt(7000)))

	tr, err = registry.ParseTransformSpec("shift_to_tfsa:")
	require.NoError(t, err)
	assert.True(t, tr.(*ShiftToTFSA).Amount.IsZero())

	tr, err = registry.ParseTransformSpec("spread:years=3")
	require.NoError(t, err)
	assert.Equal(t, 3, tr.(*SpreadDeduction).Years)
}

func TestRegistry_ParseErrors(t *testing.T) {
	registry := NewTransformRegistry()

	_, err := registry.ParseTransformSpec("set_rrsp")
	assert.Contains(t, err.Error(), "expected 'name:params'")

	_, err = registry.ParseTransformSpec("set_rrsp:amount")
	assert.Contains(t, err.Error(), "expected 'key=value'")

	_, err = registry.ParseTransformSpec("set_rrsp:value=1")
	assert.Contains(t, err.Error(), "requires 'amount' parameter")

	_, err = registry.ParseTransformSpec("spread:years=two")
	assert.Contains(t, err.Error(), "invalid years value")

	_, err = registry.ParseTransformSpec("retire_early:months=12")
	assert.Contains(t, err.Error(), "unknown transform")
}

func TestRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()
	assert.Equal(t, []string{"adjust_rrsp", "apply_split", "scale", "set_rrsp", "set_years", "shift_to_tfsa", "spread"}, names)
}
