package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
)

// BillingCycle is how often a subscription is charged.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// ErrUnknownBillingCycle is returned for cycle values other than monthly/yearly.
var ErrUnknownBillingCycle = fmt.Errorf("%w: unknown billing cycle", apperrors.ErrValidation)

// IsValid reports whether c is one of the known cycles.
func (c BillingCycle) IsValid() bool {
	switch c {
	case BillingCycleMonthly, BillingCycleYearly:
		return true
	}
	return false
}

// Subscription is a recurring service a user pays for.
type Subscription struct {
	SubscriptionID  string       `json:"subscriptionID"`
	UserID          string       `json:"userID"` // Owner; every repository access filters on it
	Name            string       `json:"name"`
	Price           int64        `json:"price"` // Minor units of CurrencyCode
	CurrencyCode    string       `json:"currencyCode"`
	BillingCycle    BillingCycle `json:"billingCycle"`
	NextPaymentDate time.Time    `json:"nextPaymentDate"`
	Category        string       `json:"category"`
	IsActive        bool         `json:"isActive"`
	AuditFields
}

// SubscriptionCharge is the part of a subscription the money calculations need.
type SubscriptionCharge struct {
	Price        int64
	CurrencyCode string
	BillingCycle BillingCycle
}

// Charge projects s onto its SubscriptionCharge.
func (s Subscription) Charge() SubscriptionCharge {
	return SubscriptionCharge{
		Price:        s.Price,
		CurrencyCode: s.CurrencyCode,
		BillingCycle: s.BillingCycle,
	}
}

// SubscriptionCursor is the position of a row in the listing order
// (next payment date, creation time, ID).
type SubscriptionCursor struct {
	NextPaymentDate time.Time
	CreatedAt       time.Time
	SubscriptionID  string
}

// Cursor returns the listing position of s.
func (s Subscription) Cursor() SubscriptionCursor {
	return SubscriptionCursor{
		NextPaymentDate: s.NextPaymentDate,
		CreatedAt:       s.CreatedAt,
		SubscriptionID:  s.SubscriptionID,
	}
}

// SubscriptionFilter narrows a subscription listing. UserID is mandatory.
// Limit <= 0 means no limit; After, when set, starts the listing strictly
// after that position.
type SubscriptionFilter struct {
	UserID   string
	IsActive *bool
	Limit    int
	After    *SubscriptionCursor
}
