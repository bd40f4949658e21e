package output

import (
	"fmt"

	"github.com/rgehrsitz/rrspgo/internal/domain"
)

// Assumptions lists the modeling assumptions rendered in detailed outputs.
func Assumptions(rules domain.TaxRules) []string {
	return []string{
		fmt.Sprintf("Tax year %d federal and Quebec brackets, no indexing", rules.Metadata.TaxYear),
		fmt.Sprintf("Basic personal amounts: federal %s, Quebec %s",
			FormatCurrency(rules.Federal.PersonalAmount), FormatCurrency(rules.Provincial.PersonalAmount)),
		fmt.Sprintf("Federal tax reduced by the %s Quebec abatement", FormatPercentage(rules.FederalAbatement)),
		fmt.Sprintf("Investment return: %s annually, deposits at the start of each year", FormatPercentage(rules.Projection.AnnualReturn)),
		fmt.Sprintf("RRSP withdrawn in full and taxed at %s", FormatPercentage(rules.Projection.WithdrawalTaxRate)),
		"Benefits and credits evaluated on a single year's family income",
	}
}
