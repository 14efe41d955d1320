package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SubscriptionRepo: newSQLiteSubscriptionRepository(db),
	}
}
