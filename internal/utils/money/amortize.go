package money

import (
	"fmt"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// amortizedPlaces is applied to every yearly/12 line item regardless of the
// currency's own precision, so totals equal the sum of the displayed rows.
const amortizedPlaces = 2

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyEquivalent returns what amount costs per month under cycle.
// Yearly amounts are divided by 12 and rounded half-up to two places.
func MonthlyEquivalent(amount decimal.Decimal, cycle domain.BillingCycle) (decimal.Decimal, error) {
	switch cycle {
	case domain.BillingCycleMonthly:
		return amount, nil
	case domain.BillingCycleYearly:
		return amount.Div(monthsPerYear).Round(amortizedPlaces), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrUnknownBillingCycle, cycle)
	}
}
