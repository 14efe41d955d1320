package services

import (
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Subscription: NewSubscriptionService(repos.SubscriptionRepo, WithMetrics(m)),
		Currency:     NewCurrencyService(),
	}
}
