package money_test

import (
	"testing"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/utils/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		cycle  domain.BillingCycle
		want   string
	}{
		{name: "yearly divides evenly", amount: "1200.00", cycle: domain.BillingCycleYearly, want: "100.00"},
		{name: "yearly repeating decimal rounds to cents", amount: "100.00", cycle: domain.BillingCycleYearly, want: "8.33"},
		{name: "yearly rounds half up", amount: "0.06", cycle: domain.BillingCycleYearly, want: "0.01"},
		{name: "yearly rounds up above half", amount: "200", cycle: domain.BillingCycleYearly, want: "16.67"},
		{name: "yearly of zero decimal currency", amount: "120000", cycle: domain.BillingCycleYearly, want: "10000"},
		{name: "monthly is unchanged", amount: "50.00", cycle: domain.BillingCycleMonthly, want: "50.00"},
		{name: "monthly keeps extra precision", amount: "9.999", cycle: domain.BillingCycleMonthly, want: "9.999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.MonthlyEquivalent(decimal.RequireFromString(tt.amount), tt.cycle)
			require.NoError(t, err)
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestMonthlyEquivalent_UnknownCycle(t *testing.T) {
	got, err := money.MonthlyEquivalent(decimal.NewFromInt(10), domain.BillingCycle("weekly"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownBillingCycle)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.True(t, got.IsZero())
}
