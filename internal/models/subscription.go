package models

import "time"

// BillingCycle mirrors the billing_cycle column values.
type BillingCycle string

// Subscription is the row shape of the subscriptions table.
type Subscription struct {
	SubscriptionID  string       `db:"subscription_id"`
	UserID          string       `db:"user_id"`
	Name            string       `db:"name"`
	Price           int64        `db:"price"` // Minor units
	CurrencyCode    string       `db:"currency_code"`
	BillingCycle    BillingCycle `db:"billing_cycle"`
	NextPaymentDate time.Time    `db:"next_payment_date"`
	Category        string       `db:"category"`
	IsActive        bool         `db:"is_active"`
	AuditFields
}
