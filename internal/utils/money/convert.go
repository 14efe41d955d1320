// Package money converts, amortizes, aggregates and formats subscription prices.
//
// Prices are persisted as integer minor units (cents for USD, whole yen for JPY)
// and surfaced as decimals. All functions here are pure and safe for concurrent use.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegativeAmount is returned by ValidateAmount for amounts below zero.
	ErrNegativeAmount = fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	// ErrAmountTooLarge is returned by ValidateAmount for amounts above MaxAmount.
	ErrAmountTooLarge = fmt.Errorf("%w: amount is too large", apperrors.ErrValidation)
)

// MaxAmount bounds user-entered amounts so that every registered currency's
// minor-unit representation fits in an int64.
var MaxAmount = decimal.New(1, 12)

// ValidateAmount checks the preconditions ToMinorUnits relies on. The
// conversion functions themselves do not re-check them.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// ToMinorUnits converts a decimal amount to the integer stored for currencyCode.
//
// The amount is first fixed to the currency's precision as a decimal string
// (rounding half away from zero) and the digits are then read back as an
// integer, so 9.995 USD becomes "10.00" and then 1000.
//
// Example: ToMinorUnits(9.99, "USD") returns 999
// Example: ToMinorUnits(1500.7, "JPY") returns 1501
func ToMinorUnits(amount decimal.Decimal, currencyCode string) int64 {
	currency := domain.LookupCurrency(currencyCode)
	fixed := amount.StringFixed(int32(currency.Precision))
	digits := strings.Replace(fixed, ".", "", 1)
	// ParseInt saturates at the int64 bounds on overflow; ValidateAmount keeps
	// callers well inside them.
	minor, _ := strconv.ParseInt(digits, 10, 64)
	return minor
}

// FromMinorUnits converts a stored minor-unit integer back to a decimal amount.
func FromMinorUnits(minorUnits int64, currencyCode string) decimal.Decimal {
	currency := domain.LookupCurrency(currencyCode)
	return decimal.New(minorUnits, -int32(currency.Precision))
}
