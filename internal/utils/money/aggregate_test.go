package money_test

import (
	"testing"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/utils/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_MixedCycles(t *testing.T) {
	charges := []domain.SubscriptionCharge{
		{Price: 1000, CurrencyCode: "JPY", BillingCycle: domain.BillingCycleMonthly},
		{Price: 120000, CurrencyCode: "JPY", BillingCycle: domain.BillingCycleYearly},
		{Price: 999, CurrencyCode: "USD", BillingCycle: domain.BillingCycleMonthly},
	}

	totals := money.Aggregate(charges)

	require.Len(t, totals, 3)
	assertDecimal(t, "11000", totals["JPY"])
	assertDecimal(t, "9.99", totals["USD"])
	assertDecimal(t, "0", totals["EUR"])
}

func TestAggregate_RoundsEachRowBeforeSumming(t *testing.T) {
	// 100.00/12 rounds to 8.33 per row; three rows sum to 24.99, not 25.00.
	charge := domain.SubscriptionCharge{Price: 10000, CurrencyCode: "EUR", BillingCycle: domain.BillingCycleYearly}

	totals := money.Aggregate([]domain.SubscriptionCharge{charge, charge, charge})

	assertDecimal(t, "24.99", totals["EUR"])
}

func TestAggregate_SkipsUnregisteredCurrency(t *testing.T) {
	charges := []domain.SubscriptionCharge{
		{Price: 500, CurrencyCode: "GBP", BillingCycle: domain.BillingCycleMonthly},
		{Price: 250, CurrencyCode: "EUR", BillingCycle: domain.BillingCycleMonthly},
	}

	totals := money.Aggregate(charges)

	require.Len(t, totals, 3)
	_, hasGBP := totals["GBP"]
	assert.False(t, hasGBP)
	assertDecimal(t, "2.5", totals["EUR"])
	assertDecimal(t, "0", totals["JPY"])
}

func TestAggregate_SkipsUnknownCycle(t *testing.T) {
	charges := []domain.SubscriptionCharge{
		{Price: 500, CurrencyCode: "USD", BillingCycle: domain.BillingCycle("weekly")},
		{Price: 100, CurrencyCode: "USD", BillingCycle: domain.BillingCycleMonthly},
	}

	totals := money.Aggregate(charges)

	assertDecimal(t, "1", totals["USD"])
}

func TestAggregate_Empty(t *testing.T) {
	for _, totals := range []money.AggregatedTotals{money.Aggregate(nil), money.Aggregate([]domain.SubscriptionCharge{})} {
		require.Len(t, totals, len(domain.SupportedCurrencies()))
		for _, c := range domain.SupportedCurrencies() {
			total, ok := totals[c.CurrencyCode]
			assert.True(t, ok, c.CurrencyCode)
			assert.True(t, total.IsZero(), c.CurrencyCode)
		}
	}
}

func TestAggregate_OrderDoesNotMatter(t *testing.T) {
	charges := []domain.SubscriptionCharge{
		{Price: 1999, CurrencyCode: "USD", BillingCycle: domain.BillingCycleYearly},
		{Price: 499, CurrencyCode: "USD", BillingCycle: domain.BillingCycleMonthly},
		{Price: 3000, CurrencyCode: "JPY", BillingCycle: domain.BillingCycleYearly},
	}
	reversed := []domain.SubscriptionCharge{charges[2], charges[1], charges[0]}

	forward := money.Aggregate(charges)
	backward := money.Aggregate(reversed)

	for code, total := range forward {
		assert.True(t, total.Equal(backward[code]), code)
	}
}

func TestAggregatedTotals_Ordered(t *testing.T) {
	totals := money.Aggregate([]domain.SubscriptionCharge{
		{Price: 999, CurrencyCode: "USD", BillingCycle: domain.BillingCycleMonthly},
	})

	ordered := totals.Ordered()

	require.Len(t, ordered, 3)
	assert.Equal(t, "JPY", ordered[0].CurrencyCode)
	assert.Equal(t, "USD", ordered[1].CurrencyCode)
	assert.Equal(t, "EUR", ordered[2].CurrencyCode)
	assertDecimal(t, "9.99", ordered[1].Total)
	assert.True(t, money.AggregatedTotals{}.Ordered()[0].Total.IsZero())
}
