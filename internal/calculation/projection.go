package calculation

import (
	"github.com/rgehrsitz/rrspgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectionCalculator compounds annual RRSP and TFSA deposits at a fixed return
type ProjectionCalculator struct {
	AnnualReturn      decimal.Decimal
	WithdrawalTaxRate decimal.Decimal
}

// NewProjectionCalculator creates a projection calculator from the rules
func NewProjectionCalculator(assumptions domain.ProjectionAssumptions) *ProjectionCalculator {
	return &ProjectionCalculator{
		AnnualReturn:      assumptions.AnnualReturn,
		WithdrawalTaxRate: assumptions.WithdrawalTaxRate,
	}
}

// Project returns balances for year 0 through years. Each year the deposit is
// made first and the balance then grows for a full year. The RRSP net value
// assumes the whole balance is withdrawn at once and taxed at the withdrawal
// rate; the TFSA net value equals its balance.
func (pc *ProjectionCalculator) Project(rrspDeposit, tfsaDeposit decimal.Decimal, years int) []domain.ProjectionYear {
	if years < 0 {
		years = 0
	}
	growth := one.Add(pc.AnnualReturn)
	keep := one.Sub(pc.WithdrawalTaxRate)

	data := make([]domain.ProjectionYear, 0, years+1)
	var rrsp, tfsa decimal.Decimal
	for y := 0; y <= years; y++ {
		if y > 0 {
			rrsp = rrsp.Add(rrspDeposit).Mul(growth)
			tfsa = tfsa.Add(tfsaDeposit).Mul(growth)
		}
		data = append(data, domain.ProjectionYear{
			Year:    y,
			RRSP:    rrsp,
			TFSA:    tfsa,
			RRSPNet: rrsp.Mul(keep),
			TFSANet: tfsa,
		})
	}
	return data
}
