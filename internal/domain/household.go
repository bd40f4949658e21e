package domain

import "github.com/shopspring/decimal"

// Household describes the taxpayer and the family composition that selects
// benefit constants
type Household struct {
	Salary         decimal.Decimal `yaml:"salary" json:"salary"`
	RentalIncome   decimal.Decimal `yaml:"rental_income" json:"rental_income"`
	Couple         bool            `yaml:"couple" json:"couple"`
	Renter         bool            `yaml:"renter" json:"renter"`
	SpouseIncome   decimal.Decimal `yaml:"spouse_income" json:"spouse_income"`
	ChildrenUnder6 int             `yaml:"children_under_6" json:"children_under_6"`
	Children6To17  int             `yaml:"children_6_to_17" json:"children_6_to_17"`
	RRSPRoom       decimal.Decimal `yaml:"rrsp_room" json:"rrsp_room"`
	TFSARoom       decimal.Decimal `yaml:"tfsa_room" json:"tfsa_room"`
}

// TotalIncome is the taxpayer's own income subject to tax
func (h Household) TotalIncome() decimal.Decimal {
	return h.Salary.Add(h.RentalIncome)
}

// FamilyIncome adds the spouse's income for couples
func (h Household) FamilyIncome() decimal.Decimal {
	if h.Couple {
		return h.TotalIncome().Add(h.SpouseIncome)
	}
	return h.TotalIncome()
}

// WorkIncome is the employment income used by the in-work benefits
func (h Household) WorkIncome() decimal.Decimal {
	return h.Salary
}

// Children returns the total number of children, never negative
func (h Household) Children() int {
	n := 0
	if h.ChildrenUnder6 > 0 {
		n += h.ChildrenUnder6
	}
	if h.Children6To17 > 0 {
		n += h.Children6To17
	}
	return n
}

// Scenario is one named contribution plan
type Scenario struct {
	Name             string          `yaml:"name" json:"name"`
	Description      string          `yaml:"description,omitempty" json:"description,omitempty"`
	RRSPContribution decimal.Decimal `yaml:"rrsp_contribution" json:"rrsp_contribution"`
	TFSAContribution decimal.Decimal `yaml:"tfsa_contribution" json:"tfsa_contribution"`
	SpreadYears      int             `yaml:"spread_years" json:"spread_years"`
	ProjectionYears  int             `yaml:"projection_years" json:"projection_years"`
}

// Configuration is the top-level input document
type Configuration struct {
	Household Household  `yaml:"household" json:"household"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
	Rules     *TaxRules  `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// DeepCopy returns an independent copy of the scenario. Scenario holds no
// references, so a value copy is enough.
func (s *Scenario) DeepCopy() *Scenario {
	c := *s
	return &c
}
