package repositories

import (
	"context"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
)

// SubscriptionReader defines read operations for subscription data.
// Every method is scoped to the owning user.
type SubscriptionReader interface {
	// FindSubscriptionByID retrieves a subscription owned by userID.
	// Returns apperrors.ErrNotFound if it does not exist or belongs to another user.
	FindSubscriptionByID(ctx context.Context, subscriptionID string, userID string) (*domain.Subscription, error)

	// ListSubscriptions retrieves the subscriptions matching filter, ordered by next payment date.
	ListSubscriptions(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, error)
}

// SubscriptionWriter defines write operations for subscription data
type SubscriptionWriter interface {
	// SaveSubscription persists a new subscription.
	SaveSubscription(ctx context.Context, subscription domain.Subscription) error

	// UpdateSubscription overwrites the mutable fields of an existing subscription.
	UpdateSubscription(ctx context.Context, subscription domain.Subscription) error

	// DeleteSubscription removes a subscription owned by userID.
	DeleteSubscription(ctx context.Context, subscriptionID string, userID string) error
}

// SubscriptionRepositoryFacade combines all subscription-related repository interfaces
type SubscriptionRepositoryFacade interface {
	SubscriptionReader
	SubscriptionWriter
}
