package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/subscription_tracker/internal/models"
	"github.com/SscSPs/subscription_tracker/internal/utils/mapping"
)

type SQLiteSubscriptionRepository struct {
	BaseRepository
}

// newSQLiteSubscriptionRepository creates a new repository for subscription data.
func newSQLiteSubscriptionRepository(db *sql.DB) portsrepo.SubscriptionRepositoryFacade {
	return &SQLiteSubscriptionRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.SubscriptionRepositoryFacade = (*SQLiteSubscriptionRepository)(nil)

const subscriptionColumns = `subscription_id, user_id, name, price, currency_code, billing_cycle, next_payment_date, category, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveSubscription inserts a new subscription.
func (r *SQLiteSubscriptionRepository) SaveSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)

	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err := r.DB.ExecContext(ctx, query,
		m.SubscriptionID,
		m.UserID,
		m.Name,
		m.Price,
		m.CurrencyCode,
		string(m.BillingCycle),
		formatDate(m.NextPaymentDate),
		m.Category,
		m.IsActive,
		formatTimestamp(m.CreatedAt),
		m.CreatedBy,
		formatTimestamp(m.LastUpdatedAt),
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
func (r *SQLiteSubscriptionRepository) FindSubscriptionByID(ctx context.Context, subscriptionID string, userID string) (*domain.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscription_id = ? AND user_id = ?;
	`

	m, err := scanSubscription(r.DB.QueryRowContext(ctx, query, subscriptionID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find subscription %s: %w", subscriptionID, err)
	}

	d := mapping.ToDomainSubscription(m)
	return &d, nil
}

// ListSubscriptions retrieves the owner's subscriptions, soonest payment first.
func (r *SQLiteSubscriptionRepository) ListSubscriptions(ctx context.Context, filter domain.SubscriptionFilter) ([]domain.Subscription, error) {
	conditions := []string{"user_id = ?"}
	args := []any{filter.UserID}
	if filter.IsActive != nil {
		conditions = append(conditions, "is_active = ?")
		args = append(args, *filter.IsActive)
	}
	if filter.After != nil {
		conditions = append(conditions, "(next_payment_date, created_at, subscription_id) > (?, ?, ?)")
		args = append(args,
			formatDate(filter.After.NextPaymentDate),
			formatTimestamp(filter.After.CreatedAt),
			filter.After.SubscriptionID)
	}

	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY next_payment_date ASC, created_at ASC, subscription_id ASC`
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	modelSubs := []models.Subscription{}
	for rows.Next() {
		m, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
		}
		modelSubs = append(modelSubs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	return mapping.ToDomainSubscriptionSlice(modelSubs), nil
}

// UpdateSubscription overwrites the mutable columns of an owned subscription.
func (r *SQLiteSubscriptionRepository) UpdateSubscription(ctx context.Context, subscription domain.Subscription) error {
	m := mapping.ToModelSubscription(subscription)

	query := `
		UPDATE subscriptions
		SET name = ?, price = ?, currency_code = ?, billing_cycle = ?, next_payment_date = ?,
			category = ?, is_active = ?, last_updated_at = ?, last_updated_by = ?
		WHERE subscription_id = ? AND user_id = ?;
	`

	res, err := r.DB.ExecContext(ctx, query,
		m.Name,
		m.Price,
		m.CurrencyCode,
		string(m.BillingCycle),
		formatDate(m.NextPaymentDate),
		m.Category,
		m.IsActive,
		formatTimestamp(m.LastUpdatedAt),
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
	return requireAffected(res)
}

// DeleteSubscription removes an owned subscription.
func (r *SQLiteSubscriptionRepository) DeleteSubscription(ctx context.Context, subscriptionID string, userID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM subscriptions WHERE subscription_id = ? AND user_id = ?;`, subscriptionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", subscriptionID, err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (models.Subscription, error) {
	var (
		m                                  models.Subscription
		cycle, nextPayment, created, updated string
	)
	err := row.Scan(
		&m.SubscriptionID,
		&m.UserID,
		&m.Name,
		&m.Price,
		&m.CurrencyCode,
		&cycle,
		&nextPayment,
		&m.Category,
		&m.IsActive,
		&created,
		&m.CreatedBy,
		&updated,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Subscription{}, err
	}

	m.BillingCycle = models.BillingCycle(cycle)
	if m.NextPaymentDate, err = parseDate(nextPayment); err != nil {
		return models.Subscription{}, err
	}
	if m.CreatedAt, err = parseTimestamp(created); err != nil {
		return models.Subscription{}, err
	}
	if m.LastUpdatedAt, err = parseTimestamp(updated); err != nil {
		return models.Subscription{}, err
	}
	return m, nil
}
