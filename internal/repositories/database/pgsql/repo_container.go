package pgsql

import (
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
	}
}
