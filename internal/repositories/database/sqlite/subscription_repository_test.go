package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/subscription_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/subscription_tracker/pkg/database"
	"github.com/stretchr/testify/suite"
)

type SubscriptionRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *sql.DB
	repo portsrepo.SubscriptionRepositoryFacade
}

func (s *SubscriptionRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	path := filepath.Join(s.T().TempDir(), "subscriptions.db")

	s.Require().NoError(database.RunSQLiteMigrations(path))

	db, err := database.NewSQLiteDB(s.ctx, path)
	s.Require().NoError(err)
	s.db = db
	s.repo = sqlite.NewRepositoryProvider(db).SubscriptionRepo
}

func (s *SubscriptionRepositoryTestSuite) TearDownTest() {
	s.db.Close()
}

func newSubscription(id, userID, name string, next time.Time) domain.Subscription {
	now := time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)
	return domain.Subscription{
		SubscriptionID:  id,
		UserID:          userID,
		Name:            name,
		Price:           999,
		CurrencyCode:    "USD",
		BillingCycle:    domain.BillingCycleMonthly,
		NextPaymentDate: next,
		Category:        "video",
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *SubscriptionRepositoryTestSuite) TestSaveAndFind() {
	sub := newSubscription("sub-1", "user-1", "Netflix", date(2026, 3, 15))
	s.Require().NoError(s.repo.SaveSubscription(s.ctx, sub))

	got, err := s.repo.FindSubscriptionByID(s.ctx, "sub-1", "user-1")
	s.Require().NoError(err)
	s.Equal("Netflix", got.Name)
	s.Equal(int64(999), got.Price)
	s.Equal("USD", got.CurrencyCode)
	s.Equal(domain.BillingCycleMonthly, got.BillingCycle)
	s.True(got.NextPaymentDate.Equal(sub.NextPaymentDate))
	s.True(got.CreatedAt.Equal(sub.CreatedAt))
	s.True(got.IsActive)
	s.Equal("video", got.Category)
}

func (s *SubscriptionRepositoryTestSuite) TestFind_OtherOwnerIsNotFound() {
	s.Require().NoError(s.repo.SaveSubscription(s.ctx, newSubscription("sub-1", "user-1", "Netflix", date(2026, 3, 15))))

	_, err := s.repo.FindSubscriptionByID(s.ctx, "sub-1", "user-2")
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.repo.FindSubscriptionByID(s.ctx, "missing", "user-1")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *SubscriptionRepositoryTestSuite) TestSave_DuplicateNamePerUser() {
	s.Require().NoError(s.repo.SaveSubscription(s.ctx, newSubscription("sub-1", "user-1", "Netflix", date(2026, 3, 15))))

	err := s.repo.SaveSubscription(s.ctx, newSubscription("sub-2", "user-1", "Netflix", date(2026, 4, 15)))
	s.ErrorIs(err, apperrors.ErrDuplicate)

	// The same name under another user is fine.
	s.NoError(s.repo.SaveSubscription(s.ctx, newSubscription("sub-3", "user-2", "Netflix", date(2026, 4, 15))))
}

func (s *SubscriptionRepositoryTestSuite) TestList_OrderAndFilter() {
	later := newSubscription("sub-1", "user-1", "Spotify", date(2026, 5, 1))
	sooner := newSubscription("sub-2", "user-1", "Netflix", date(2026, 2, 1))
	inactive := newSubscription("sub-3", "user-1", "Gym", date(2026, 1, 1))
	inactive.IsActive = false
	foreign := newSubscription("sub-4", "user-2", "Hulu", date(2026, 1, 1))
	for _, sub := range []domain.Subscription{later, sooner, inactive, foreign} {
		s.Require().NoError(s.repo.SaveSubscription(s.ctx, sub))
	}

	all, err := s.repo.ListSubscriptions(s.ctx, domain.SubscriptionFilter{UserID: "user-1"})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("sub-3", all[0].SubscriptionID)
	s.Equal("sub-2", all[1].SubscriptionID)
	s.Equal("sub-1", all[2].SubscriptionID)

	active := true
	onlyActive, err := s.repo.ListSubscriptions(s.ctx, domain.SubscriptionFilter{UserID: "user-1", IsActive: &active})
	s.Require().NoError(err)
	s.Require().Len(onlyActive, 2)
	for _, sub := range onlyActive {
		s.True(sub.IsActive)
	}

	none, err := s.repo.ListSubscriptions(s.ctx, domain.SubscriptionFilter{UserID: "nobody"})
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *SubscriptionRepositoryTestSuite) TestList_KeysetPagination() {
	same := date(2026, 4, 1)
	subs := []domain.Subscription{
		newSubscription("sub-c", "user-1", "C", same),
		newSubscription("sub-a", "user-1", "A", same),
		newSubscription("sub-b", "user-1", "B", date(2026, 3, 1)),
	}
	for _, sub := range subs {
		s.Require().NoError(s.repo.SaveSubscription(s.ctx, sub))
	}

	first, err := s.repo.ListSubscriptions(s.ctx, domain.SubscriptionFilter{UserID: "user-1", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Equal("sub-b", first[0].SubscriptionID)
	s.Equal("sub-a", first[1].SubscriptionID)

	cursor := first[1].Cursor()
	rest, err := s.repo.ListSubscriptions(s.ctx, domain.SubscriptionFilter{UserID: "user-1", Limit: 2, After: &cursor})
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal("sub-c", rest[0].SubscriptionID)
}

func (s *SubscriptionRepositoryTestSuite) TestUpdate() {
	sub := newSubscription("sub-1", "user-1", "Netflix", date(2026, 3, 15))
	s.Require().NoError(s.repo.SaveSubscription(s.ctx, sub))

	sub.Price = 120000
	sub.CurrencyCode = "JPY"
	sub.BillingCycle = domain.BillingCycleYearly
	sub.IsActive = false
	s.Require().NoError(s.repo.UpdateSubscription(s.ctx, sub))

	got, err := s.repo.FindSubscriptionByID(s.ctx, "sub-1", "user-1")
	s.Require().NoError(err)
	s.Equal(int64(120000), got.Price)
	s.Equal("JPY", got.CurrencyCode)
	s.Equal(domain.BillingCycleYearly, got.BillingCycle)
	s.False(got.IsActive)

	sub.UserID = "user-2"
	s.ErrorIs(s.repo.UpdateSubscription(s.ctx, sub), apperrors.ErrNotFound)
}

func (s *SubscriptionRepositoryTestSuite) TestDelete() {
	s.Require().NoError(s.repo.SaveSubscription(s.ctx, newSubscription("sub-1", "user-1", "Netflix", date(2026, 3, 15))))

	s.ErrorIs(s.repo.DeleteSubscription(s.ctx, "sub-1", "user-2"), apperrors.ErrNotFound)
	s.NoError(s.repo.DeleteSubscription(s.ctx, "sub-1", "user-1"))
	s.ErrorIs(s.repo.DeleteSubscription(s.ctx, "sub-1", "user-1"), apperrors.ErrNotFound)
}

func TestSubscriptionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SubscriptionRepositoryTestSuite))
}
