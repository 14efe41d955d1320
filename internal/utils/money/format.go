package money

import (
	gomoney "github.com/Rhymond/go-money"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatDecimal renders amount as a currency string, e.g. "$9.99" or "¥1,000".
// The amount is rounded to the currency's precision first. Unknown codes are
// formatted as the default currency.
func FormatDecimal(amount decimal.Decimal, currencyCode string) string {
	currency := domain.LookupCurrency(currencyCode)
	minor := ToMinorUnits(amount, currency.CurrencyCode)
	return gomoney.New(minor, currency.CurrencyCode).Display()
}

// FormatFromMinorUnits renders a stored minor-unit amount.
//
// Example: FormatFromMinorUnits(999, "USD") returns "$9.99"
// Example: FormatFromMinorUnits(1000, "JPY") returns "¥1,000"
func FormatFromMinorUnits(minorUnits int64, currencyCode string) string {
	return FormatDecimal(FromMinorUnits(minorUnits, currencyCode), currencyCode)
}
