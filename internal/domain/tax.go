package domain

import "github.com/shopspring/decimal"

// UnboundedIncome stands in for the open upper edge of the top bracket.
// It is a sort key, not a tax limit.
var UnboundedIncome = decimal.NewFromInt(999999999)

// TaxBracket is a half-open taxable income interval [Min, Max) taxed at Rate.
type TaxBracket struct {
	Min  decimal.Decimal `yaml:"min" json:"min"`
	Max  decimal.Decimal `yaml:"max" json:"max"`
	Rate decimal.Decimal `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the bracket has no upper edge.
func (b TaxBracket) IsUnbounded() bool {
	return b.Max.GreaterThanOrEqual(UnboundedIncome)
}

// Contains reports whether taxable income falls inside the bracket.
func (b TaxBracket) Contains(taxable decimal.Decimal) bool {
	if taxable.LessThan(b.Min) {
		return false
	}
	return b.IsUnbounded() || taxable.LessThan(b.Max)
}

// BracketTable is an ordered progressive table plus the personal amount
// subtracted from income before any bracket applies.
type BracketTable struct {
	Name           string          `yaml:"name" json:"name"`
	PersonalAmount decimal.Decimal `yaml:"personal_amount" json:"personal_amount"`
	Brackets       []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// Find returns the bracket covering the given taxable income.
func (t BracketTable) Find(taxable decimal.Decimal) (TaxBracket, bool) {
	for _, b := range t.Brackets {
		if b.Contains(taxable) {
			return b, true
		}
	}
	return TaxBracket{}, false
}

// CombinedBracket is one zone of the merged federal + provincial schedule,
// expressed in gross income terms.
type CombinedBracket struct {
	Min      decimal.Decimal `json:"min"`
	Max      decimal.Decimal `json:"max"`
	Rate     decimal.Decimal `json:"rate"`
	InRange  bool            `json:"inRange"`
	Deducted decimal.Decimal `json:"deducted"`
}
