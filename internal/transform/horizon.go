package transform

import (
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// SpreadDeduction deducts the RRSP contribution over several tax years.
type SpreadDeduction struct {
	Years int
}

func (s *SpreadDeduction) Name() string {
	return "spread"
}

func (s *SpreadDeduction) Description() string {
	return fmt.Sprintf("Spread the RRSP deduction over %d years", s.Years)
}

func (s *SpreadDeduction) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if s.Years < 1 || s.Years > 10 {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("years must be between 1 and 10, got %d", s.Years), nil)
	}
	return nil
}

func (s *SpreadDeduction) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.SpreadYears = s.Years
	return modified, nil
}

// SetProjectionYears changes the projection horizon.
type SetProjectionYears struct {
	Years int
}

func (s *SetProjectionYears) Name() string {
	return "set_years"
}

func (s *SetProjectionYears) Description() string {
	return fmt.Sprintf("Project savings over %d years", s.Years)
}

func (s *SetProjectionYears) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if s.Years < 1 || s.Years > 60 {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("years must be between 1 and 60, got %d", s.Years), nil)
	}
	return nil
}

func (s *SetProjectionYears) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.ProjectionYears = s.Years
	return modified, nil
}
