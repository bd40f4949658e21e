package transform

import (
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/rgehrsitz/rrspgo/pkg/money"
	"github.com/shopspring/decimal"
)

// SetRRSPContribution replaces the RRSP contribution.
type SetRRSPContribution struct {
	Amount decimal.Decimal
}

func (s *SetRRSPContribution) Name() string {
	return "set_rrsp"
}

func (s *SetRRSPContribution) Description() string {
	return fmt.Sprintf("Contribute %s to the RRSP", money.FormatMoney(s.Amount))
}

func (s *SetRRSPContribution) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", s.Amount.String()), nil)
	}
	return nil
}

func (s *SetRRSPContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.RRSPContribution = s.Amount
	return modified, nil
}

// AdjustRRSPContribution adds Delta to the RRSP contribution, floored at zero.
type AdjustRRSPContribution struct {
	Delta decimal.Decimal
}

func (a *AdjustRRSPContribution) Name() string {
	return "adjust_rrsp"
}

func (a *AdjustRRSPContribution) Description() string {
	return fmt.Sprintf("Change the RRSP contribution by %s", money.FormatSignedMoney(a.Delta))
}

func (a *AdjustRRSPContribution) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(a.Name(), "validate", "base scenario cannot be nil", nil)
	}
	return nil
}

func (a *AdjustRRSPContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.RRSPContribution = decimal.Max(decimal.Zero, base.RRSPContribution.Add(a.Delta))
	return modified, nil
}

// ShiftToTFSA moves money from the RRSP contribution to the TFSA
// contribution. A zero Amount moves the whole RRSP contribution.
type ShiftToTFSA struct {
	Amount decimal.Decimal
}

func (s *ShiftToTFSA) Name() string {
	return "shift_to_tfsa"
}

func (s *ShiftToTFSA) Description() string {
	if s.Amount.IsZero() {
		return "Move the whole RRSP contribution to the TFSA"
	}
	return fmt.Sprintf("Move %s from the RRSP to the TFSA", money.FormatMoney(s.Amount))
}

func (s *ShiftToTFSA) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if s.Amount.IsNegative() {
		return NewTransformError(s.Name(), "validate", "amount cannot be negative", nil)
	}
	if s.Amount.GreaterThan(base.RRSPContribution) {
		return NewTransformError(s.Name(), "validate",
			fmt.Sprintf("cannot move %s, RRSP contribution is %s", s.Amount.String(), base.RRSPContribution.String()), nil)
	}
	return nil
}

func (s *ShiftToTFSA) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	moved := s.Amount
	if moved.IsZero() {
		moved = base.RRSPContribution
	}
	modified := base.DeepCopy()
	modified.RRSPContribution = base.RRSPContribution.Sub(moved)
	modified.TFSAContribution = base.TFSAContribution.Add(moved)
	return modified, nil
}

// ScaleContributions multiplies the contributions by Factor. With RRSPOnly
// set the TFSA contribution is left alone.
type ScaleContributions struct {
	Factor   decimal.Decimal
	RRSPOnly bool
}

func (s *ScaleContributions) Name() string {
	return "scale"
}

func (s *ScaleContributions) Description() string {
	if s.RRSPOnly {
		return fmt.Sprintf("Scale the RRSP contribution by %s", s.Factor.String())
	}
	return fmt.Sprintf("Scale both contributions by %s", s.Factor.String())
}

func (s *ScaleContributions) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if s.Factor.IsNegative() {
		return NewTransformError(s.Name(), "validate", "factor cannot be negative", nil)
	}
	return nil
}

func (s *ScaleContributions) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.RRSPContribution = base.RRSPContribution.Mul(s.Factor).Round(2)
	if !s.RRSPOnly {
		modified.TFSAContribution = base.TFSAContribution.Mul(s.Factor).Round(2)
	}
	return modified, nil
}

// ApplySplit replaces both contributions with a recommended split.
type ApplySplit struct {
	RRSP decimal.Decimal
	TFSA decimal.Decimal
}

func (a *ApplySplit) Name() string {
	return "apply_split"
}

func (a *ApplySplit) Description() string {
	return fmt.Sprintf("Contribute %s to the RRSP and %s to the TFSA", money.FormatMoney(a.RRSP), money.FormatMoney(a.TFSA))
}

func (a *ApplySplit) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(a.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if a.RRSP.IsNegative() || a.TFSA.IsNegative() {
		return NewTransformError(a.Name(), "validate", "contributions cannot be negative", nil)
	}
	return nil
}

func (a *ApplySplit) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.RRSPContribution = a.RRSP
	modified.TFSAContribution = a.TFSA
	return modified, nil
}

// CapToRooms lowers each contribution to its available room.
type CapToRooms struct {
	RRSPRoom decimal.Decimal
	TFSARoom decimal.Decimal
}

func (c *CapToRooms) Name() string {
	return "cap_to_rooms"
}

func (c *CapToRooms) Description() string {
	return fmt.Sprintf("Limit contributions to %s (RRSP) and %s (TFSA)", money.FormatMoney(c.RRSPRoom), money.FormatMoney(c.TFSARoom))
}

func (c *CapToRooms) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(c.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if c.RRSPRoom.IsNegative() || c.TFSARoom.IsNegative() {
		return NewTransformError(c.Name(), "validate", "rooms cannot be negative", nil)
	}
	return nil
}

func (c *CapToRooms) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	modified.RRSPContribution = decimal.Min(base.RRSPContribution, c.RRSPRoom)
	modified.TFSAContribution = decimal.Min(base.TFSAContribution, c.TFSARoom)
	return modified, nil
}
