package domain_test

import (
	"testing"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLookupCurrency(t *testing.T) {
	tests := []struct {
		name          string
		code          string
		wantCode      string
		wantPrecision int
	}{
		{name: "yen has no minor digits", code: "JPY", wantCode: "JPY", wantPrecision: 0},
		{name: "dollar has two", code: "USD", wantCode: "USD", wantPrecision: 2},
		{name: "euro has two", code: "EUR", wantCode: "EUR", wantPrecision: 2},
		{name: "unregistered falls back to default", code: "GBP", wantCode: domain.DefaultCurrencyCode, wantPrecision: 0},
		{name: "empty falls back to default", code: "", wantCode: domain.DefaultCurrencyCode, wantPrecision: 0},
		{name: "lookup is case sensitive", code: "usd", wantCode: domain.DefaultCurrencyCode, wantPrecision: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.LookupCurrency(tt.code)
			assert.Equal(t, tt.wantCode, got.CurrencyCode)
			assert.Equal(t, tt.wantPrecision, got.Precision)
		})
	}
}

func TestSupportedCurrencies(t *testing.T) {
	currencies := domain.SupportedCurrencies()

	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.CurrencyCode
	}
	assert.Equal(t, []string{"JPY", "USD", "EUR"}, codes)

	// Mutating the returned slice must not leak into the registry.
	currencies[0].Precision = 5
	assert.Equal(t, 0, domain.LookupCurrency("JPY").Precision)
}

func TestIsSupportedCurrency(t *testing.T) {
	assert.True(t, domain.IsSupportedCurrency("JPY"))
	assert.True(t, domain.IsSupportedCurrency("EUR"))
	assert.False(t, domain.IsSupportedCurrency("GBP"))
	assert.False(t, domain.IsSupportedCurrency(""))
}
