package config

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CreateExampleConfiguration returns a small household with three scenarios,
// used by the example command as a starting point for a new file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Household: domain.Household{
			Salary:         decimal.NewFromInt(130000),
			RentalIncome:   decimal.NewFromInt(7500),
			Couple:         true,
			Renter:         true,
			SpouseIncome:   decimal.NewFromInt(42000),
			ChildrenUnder6: 1,
			Children6To17:  1,
			RRSPRoom:       decimal.NewFromInt(30000),
			TFSARoom:       decimal.NewFromInt(20000),
		},
		Scenarios: []domain.Scenario{
			{
				Name:             "lump_sum",
				Description:      "Deduct the whole contribution this year",
				RRSPContribution: decimal.NewFromInt(25000),
				TFSAContribution: decimal.NewFromInt(7000),
				SpreadYears:      1,
			},
			{
				Name:             "spread",
				Description:      "Same contribution, deduction spread over three years",
				RRSPContribution: decimal.NewFromInt(25000),
				TFSAContribution: decimal.NewFromInt(7000),
				SpreadYears:      3,
			},
			{
				Name:             "tfsa_first",
				Description:      "Fill the TFSA before the RRSP",
				RRSPContribution: decimal.NewFromInt(12000),
				TFSAContribution: decimal.NewFromInt(20000),
				SpreadYears:      1,
				ProjectionYears:  25,
			},
		},
	}
}
