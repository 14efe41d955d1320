package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/subscription_tracker/internal/models"
	"github.com/SscSPs/subscription_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSubscriptionRepository struct {
	BaseRepository
}

// newPgxSubscriptionRepository creates a new repository for subscription data.
func newPgxSubscriptionRepository(pool *pgxpool.Pool) portsrepo.SubscriptionRepositoryFacade {
	return &PgxSubscriptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SubscriptionRepositoryFacade = (*PgxSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, user_id, name, price, currency_code, billing_cycle, next_payment_date, category, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveSubscription inserts a new subscription.
func (r *PgxSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)

	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.SubscriptionID,
		m.UserID,
		m.Name,
		m.Price,
		m.CurrencyCode,
		m.BillingCycle,
		m.NextPaymentDate,
		m.Category,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: subscription named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to save subscription %s: %w", m.SubscriptionID, err)
	}
	return nil
}

// FindSubscriptionByID retrieves a subscription by ID, scoped to its owner.
func (r *PgxSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string, userID string) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscription_id = $1 AND user_id = $2;
	`

	m, err := scanSubscription(r.Pool.QueryRow(ctx, query, subscriptionID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", subscriptionID, err)
	}

	d := mapping.ToDomainSubscription(m)
	return &d, nil
}

// ListSubscriptions retrieves the owner's subscriptions, soonest payment first.
func (r *PgxSubscriptionRepository) ListSubscriptions(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	conditions := []string{"user_id = $1"}
	args := []any{filter.UserID}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if filter.After != nil {
		args = append(args, filter.After.NextPaymentDate, filter.After.CreatedAt, filter.After.SubscriptionID)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(next_payment_date, created_at, subscription_id) > ($%d::date, $%d::timestamptz, $%d)", n-2, n-1, n))
	}

	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY next_payment_date ASC, created_at ASC, subscription_id ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	modelSubs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Subscription, error) {
		return scanSubscription(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}

	return mapping.ToDomainSubscriptionSlice(modelSubs), nil
}

// UpdateSubscription overwrites the mutable columns of an owned subscription.
func (r *PgxSubscriptionRepository) UpdateSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)

	query := `
		UPDATE subscriptions
		SET name = $1, price = $2, currency_code = $3, billing_cycle = $4, next_payment_date = $5,
			category = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE subscription_id = $10 AND user_id = $11;
	`

	tag, err := r.Pool.Exec(ctx, query,
		m.Name,
		m.Price,
		m.CurrencyCode,
		m.BillingCycle,
		m.NextPaymentDate,
		m.Category,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.SubscriptionID,
		m.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: subscription named %q already exists", apperrors.ErrDuplicate, m.Name)
		}
		return fmt.Errorf("failed to update subscription %s: %w", m.SubscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteSubscription removes an owned subscription.
func (r *PgxSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string, userID string) error {
	query := `DELETE FROM subscriptions WHERE subscription_id = $1 AND user_id = $2;`

	tag, err := r.Pool.Exec(ctx, query, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", subscriptionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanSubscription(row pgx.Row) (models.Subscription, error) {
	var m models.Subscription
	err := row.Scan(
		&m.SubscriptionID,
		&m.UserID,
		&m.Name,
		&m.Price,
		&m.CurrencyCode,
		&m.BillingCycle,
		&m.NextPaymentDate,
		&m.Category,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
