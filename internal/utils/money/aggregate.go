package money

import (
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregatedTotals maps every registered currency code to its monthly-equivalent total.
type AggregatedTotals map[string]decimal.Decimal

// CurrencyTotal is one entry of AggregatedTotals.
type CurrencyTotal struct {
	CurrencyCode string
	Total        decimal.Decimal
}

// Aggregate sums the monthly equivalent of each charge per currency.
//
// The result always has one entry per registered currency, zero when nothing
// was charged in it. Charges in an unregistered currency, or with a cycle that
// cannot be amortized, are skipped. Active/inactive filtering is up to the caller.
func Aggregate(charges []domain.SubscriptionCharge) AggregatedTotals {
	currencies := domain.SupportedCurrencies()
	totals := make(AggregatedTotals, len(currencies))
	for _, c := range currencies {
		totals[c.CurrencyCode] = decimal.Zero
	}

	for _, charge := range charges {
		running, ok := totals[charge.CurrencyCode]
		if !ok {
			continue
		}
		monthly, err := MonthlyEquivalent(FromMinorUnits(charge.Price, charge.CurrencyCode), charge.BillingCycle)
		if err != nil {
			continue
		}
		totals[charge.CurrencyCode] = running.Add(monthly)
	}

	return totals
}

// Ordered returns the totals in registry order.
func (t AggregatedTotals) Ordered() []CurrencyTotal {
	currencies := domain.SupportedCurrencies()
	out := make([]CurrencyTotal, 0, len(currencies))
	for _, c := range currencies {
		total, ok := t[c.CurrencyCode]
		if !ok {
			total = decimal.Zero
		}
		out = append(out, CurrencyTotal{CurrencyCode: c.CurrencyCode, Total: total})
	}
	return out
}
