package services

import (
	"context"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/utils/money"
)

// SubscriptionReaderSvc defines read operations for subscriptions
type SubscriptionReaderSvc interface {
	// GetSubscriptionByID retrieves a subscription owned by userID.
	GetSubscriptionByID(ctx context.Context, subscriptionID string, userID string) (*domain.Subscription, error)

	// ListSubscriptions retrieves a page of the user's subscriptions together
	// with the monthly totals of all active ones.
	ListSubscriptions(ctx context.Context, userID string, params dto.ListSubscriptionsParams) (*dto.ListSubscriptionsResponse, error)

	// GetMonthlyTotals aggregates the user's active subscriptions per currency.
	GetMonthlyTotals(ctx context.Context, userID string) (money.AggregatedTotals, error)
}

// SubscriptionWriterSvc defines write operations for subscriptions
type SubscriptionWriterSvc interface {
	CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, subscriptionID string, req dto.UpdateSubscriptionRequest, userID string) (*domain.Subscription, error)
	DeleteSubscription(ctx context.Context, subscriptionID string, userID string) error
}

// SubscriptionSvcFacade combines all subscription-related service interfaces
type SubscriptionSvcFacade interface {
	SubscriptionReaderSvc
	SubscriptionWriterSvc
}
