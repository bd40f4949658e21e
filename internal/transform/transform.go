package transform

import (
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/pkg/money"
)

// ScenarioTransform rewrites a contribution scenario. Implementations never
// mutate their input; Apply returns a fresh copy.
type ScenarioTransform interface {
	Apply(base *domain.Scenario) (*domain.Scenario, error)

	// Name is the registry key, e.g. "set_rrsp".
	Name() string

	Description() string

	// Validate rejects parameters that make no sense for base.
	Validate(base *domain.Scenario) error
}

// ApplyTransforms validates and applies each transform in turn, feeding the
// output of one into the next.
func ApplyTransforms(base *domain.Scenario, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, fmt.Errorf("base scenario cannot be nil")
	}

	if len(transforms) == 0 {
		return base.DeepCopy(), nil
	}

	current := base
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}

		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}

	return current, nil
}

// ApplyWithinRooms applies transforms and rejects a result whose RRSP or
// TFSA contribution was raised above the household's available room.
func ApplyWithinRooms(base *domain.Scenario, household domain.Household, transforms []ScenarioTransform) (*domain.Scenario, error) {
	result, err := ApplyTransforms(base, transforms)
	if err != nil {
		return nil, err
	}
	if err := CheckRooms(base, result, household); err != nil {
		return nil, err
	}
	return result, nil
}

// CheckRooms reports an error when a contribution in result exceeds its
// room and is larger than it was in base. Contributions left at their base
// value pass, so an over-room scenario from a file can still be compared.
func CheckRooms(base, result *domain.Scenario, household domain.Household) error {
	if result.RRSPContribution.GreaterThan(household.RRSPRoom) && result.RRSPContribution.GreaterThan(base.RRSPContribution) {
		return NewTransformError("rooms", "check",
			fmt.Sprintf("RRSP contribution %s exceeds the available room of %s",
				money.FormatMoney(result.RRSPContribution), money.FormatMoney(household.RRSPRoom)), nil)
	}
	if result.TFSAContribution.GreaterThan(household.TFSARoom) && result.TFSAContribution.GreaterThan(base.TFSAContribution) {
		return NewTransformError("rooms", "check",
			fmt.Sprintf("TFSA contribution %s exceeds the available room of %s",
				money.FormatMoney(result.TFSAContribution), money.FormatMoney(household.TFSARoom)), nil)
	}
	return nil
}

// TransformError wraps a failure with the transform and step that produced it.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
