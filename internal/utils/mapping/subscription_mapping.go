package mapping

import (
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/models"
)

// ToModelSubscription converts a domain Subscription to a model Subscription
func ToModelSubscription(d domain.Subscription) models.Subscription {
	return models.Subscription{
		SubscriptionID:  d.SubscriptionID,
		UserID:          d.UserID,
		Name:            d.Name,
		Price:           d.Price,
		CurrencyCode:    d.CurrencyCode,
		BillingCycle:    models.BillingCycle(d.BillingCycle),
		NextPaymentDate: d.NextPaymentDate,
		Category:        d.Category,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSubscription converts a model Subscription to a domain Subscription
func ToDomainSubscription(m models.Subscription) domain.Subscription {
	return domain.Subscription{
		SubscriptionID:  m.SubscriptionID,
		UserID:          m.UserID,
		Name:            m.Name,
		Price:           m.Price,
		CurrencyCode:    m.CurrencyCode,
		BillingCycle:    domain.BillingCycle(m.BillingCycle),
		NextPaymentDate: m.NextPaymentDate,
		Category:        m.Category,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSubscriptionSlice converts a slice of model Subscriptions to domain Subscriptions
func ToDomainSubscriptionSlice(ms []models.Subscription) []domain.Subscription {
	ds := make([]domain.Subscription, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSubscription(m)
	}
	return ds
}
