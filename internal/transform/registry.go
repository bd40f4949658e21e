package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_rrsp", createSetRRSPContribution)
	registry.Register("adjust_rrsp", createAdjustRRSPContribution)
	registry.Register("shift_to_tfsa", createShiftToTFSA)
	registry.Register("scale", createScaleContributions)
	registry.Register("apply_split", createApplySplit)

	registry.Register("spread", createSpreadDeduction)
	registry.Register("set_years", createSetProjectionYears)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_rrsp:amount=10000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func requireDecimal(params map[string]string, transform, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func requireInt(params map[string]string, transform, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

// Factory functions for each transform

func createSetRRSPContribution(params map[string]string) (ScenarioTransform, error) {
	amount, err := requireDecimal(params, "set_rrsp", "amount")
	if err != nil {
		return nil, err
	}
	return &SetRRSPContribution{Amount: amount}, nil
}

func createAdjustRRSPContribution(params map[string]string) (ScenarioTransform, error) {
	delta, err := requireDecimal(params, "adjust_rrsp", "delta")
	if err != nil {
		return nil, err
	}
	return &AdjustRRSPContribution{Delta: delta}, nil
}

func createShiftToTFSA(params map[string]string) (ScenarioTransform, error) {
	if _, ok := params["amount"]; !ok {
		return &ShiftToTFSA{}, nil
	}
	amount, err := requireDecimal(params, "shift_to_tfsa", "amount")
	if err != nil {
		return nil, err
	}
	return &ShiftToTFSA{Amount: amount}, nil
}

func createScaleContributions(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal(params, "scale", "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleContributions{Factor: factor}, nil
}

func createApplySplit(params map[string]string) (ScenarioTransform, error) {
	rrsp, err := requireDecimal(params, "apply_split", "rrsp")
	if err != nil {
		return nil, err
	}
	tfsa, err := requireDecimal(params, "apply_split", "tfsa")
	if err != nil {
		return nil, err
	}
	return &ApplySplit{RRSP: rrsp, TFSA: tfsa}, nil
}

func createSpreadDeduction(params map[string]string) (ScenarioTransform, error) {
	years, err := requireInt(params, "spread", "years")
	if err != nil {
		return nil, err
	}
	return &SpreadDeduction{Years: years}, nil
}

func createSetProjectionYears(params map[string]string) (ScenarioTransform, error) {
	years, err := requireInt(params, "set_years", "years")
	if err != nil {
		return nil, err
	}
	return &SetProjectionYears{Years: years}, nil
}
