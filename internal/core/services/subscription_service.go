package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/SscSPs/subscription_tracker/internal/utils/money"
	"github.com/SscSPs/subscription_tracker/internal/utils/pagination"
	"github.com/google/uuid"
)

// subscriptionService implements the SubscriptionSvcFacade interface
type subscriptionService struct {
	BaseService
	subscriptionRepo portsrepo.SubscriptionRepositoryFacade
	metrics          *metrics.Metrics
	now              func() time.Time
}

// SubscriptionServiceOption is a functional option for configuring the subscription service
type SubscriptionServiceOption func(*subscriptionService)

// WithMetrics records writes and aggregations on m.
func WithMetrics(m *metrics.Metrics) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		s.metrics = m
	}
}

// WithClock overrides the time source used for audit fields.
func WithClock(now func() time.Time) SubscriptionServiceOption {
	return func(s *subscriptionService) {
		s.now = now
	}
}

// NewSubscriptionService creates a new subscription service with the provided options
func NewSubscriptionService(repo portsrepo.SubscriptionRepositoryFacade, options ...SubscriptionServiceOption) portssvc.SubscriptionSvcFacade {
	svc := &subscriptionService{
		subscriptionRepo: repo,
		now:              time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)

func (s *subscriptionService) CreateSubscription(ctx context.Context, req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	sub, err := s.newSubscription(req, userID)
	if err != nil {
		s.LogDebug(ctx, "Rejected subscription create request", slog.String("error", err.Error()))
		return nil, err
	}

	err = s.subscriptionRepo.SaveSubscription(ctx, *sub)
	s.metrics.RecordSubscriptionWrite("create", err)
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save subscription", slog.String("subscription_id", sub.SubscriptionID))
		}
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.LogInfo(ctx, "Subscription created",
		slog.String("subscription_id", sub.SubscriptionID),
		slog.String("currency_code", sub.CurrencyCode),
		slog.String("billing_cycle", string(sub.BillingCycle)))
	return sub, nil
}

func (s *subscriptionService) newSubscription(req dto.CreateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, fmt.Errorf("%w: price is required", apperrors.ErrValidation)
	}
	if err := money.ValidateAmount(*req.Price); err != nil {
		return nil, err
	}

	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = domain.DefaultCurrencyCode
	}
	if err := validateCurrency(currencyCode); err != nil {
		return nil, err
	}

	cycle := domain.BillingCycle(req.BillingCycle)
	if !cycle.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBillingCycle, req.BillingCycle)
	}

	nextPayment, err := parseDate(req.NextPaymentDate)
	if err != nil {
		return nil, err
	}

	category, err := normalizeCategory(req.Category)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.now().UTC()
	return &domain.Subscription{
		SubscriptionID:  uuid.NewString(),
		UserID:          userID,
		Name:            name,
		Price:           money.ToMinorUnits(*req.Price, currencyCode),
		CurrencyCode:    currencyCode,
		BillingCycle:    cycle,
		NextPaymentDate: nextPayment,
		Category:        category,
		IsActive:        isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

func (s *subscriptionService) GetSubscriptionByID(ctx context.Context, subscriptionID string, userID string) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find subscription", slog.String("subscription_id", subscriptionID))
		}
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) ListSubscriptions(ctx context.Context, userID string, params dto.ListSubscriptionsParams) (*dto.ListSubscriptionsResponse, error) {
	filter := domain.SubscriptionFilter{UserID: userID, IsActive: params.Active}
	if params.NextToken != nil && *params.NextToken != "" {
		cursor, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = &cursor
	}
	if params.Limit > 0 {
		// One extra row tells whether another page exists.
		filter.Limit = params.Limit + 1
	}

	subs, err := s.subscriptionRepo.ListSubscriptions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subscriptions")
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}

	var nextToken *string
	if params.Limit > 0 && len(subs) > params.Limit {
		subs = subs[:params.Limit]
		token := pagination.EncodeToken(subs[len(subs)-1].Cursor())
		nextToken = &token
	}

	var totals money.AggregatedTotals
	switch {
	case filter.Limit == 0 && filter.After == nil:
		totals = s.aggregateActive(subs)
	case params.Active != nil && !*params.Active:
		totals = s.aggregateActive(nil)
	default:
		// A page only holds part of the rows; totals always cover all of them.
		totals, err = s.GetMonthlyTotals(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	s.LogDebug(ctx, "Subscriptions listed", slog.Int("count", len(subs)))
	return &dto.ListSubscriptionsResponse{
		Subscriptions: dto.ToListSubscriptionResponse(subs),
		Totals:        dto.ToCurrencyTotalResponses(totals),
		NextToken:     nextToken,
	}, nil
}

func (s *subscriptionService) GetMonthlyTotals(ctx context.Context, userID string) (money.AggregatedTotals, error) {
	active := true
	subs, err := s.subscriptionRepo.ListSubscriptions(ctx, domain.SubscriptionFilter{UserID: userID, IsActive: &active})
	if err != nil {
		s.LogError(ctx, err, "Failed to list active subscriptions")
		return nil, fmt.Errorf("failed to compute monthly totals: %w", err)
	}
	return s.aggregateActive(subs), nil
}

// aggregateActive totals only the active rows of subs.
func (s *subscriptionService) aggregateActive(subs []domain.Subscription) money.AggregatedTotals {
	charges := make([]domain.SubscriptionCharge, 0, len(subs))
	for _, sub := range subs {
		if sub.IsActive {
			charges = append(charges, sub.Charge())
		}
	}
	s.metrics.RecordAggregation(len(charges))
	return money.Aggregate(charges)
}

func (s *subscriptionService) UpdateSubscription(ctx context.Context, subscriptionID string, req dto.UpdateSubscriptionRequest, userID string) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.FindSubscriptionByID(ctx, subscriptionID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load subscription for update", slog.String("subscription_id", subscriptionID))
		}
		return nil, err
	}

	if err := applyUpdate(sub, req); err != nil {
		s.LogDebug(ctx, "Rejected subscription update request", slog.String("error", err.Error()))
		return nil, err
	}
	sub.LastUpdatedAt = s.now().UTC()
	sub.LastUpdatedBy = userID

	err = s.subscriptionRepo.UpdateSubscription(ctx, *sub)
	s.metrics.RecordSubscriptionWrite("update", err)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to update subscription", slog.String("subscription_id", subscriptionID))
		}
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	s.LogInfo(ctx, "Subscription updated", slog.String("subscription_id", subscriptionID))
	return sub, nil
}

// applyUpdate merges the provided fields of req into sub. A currency change
// without a new price keeps the displayed amount and re-expresses it in the
// new currency's minor units.
func applyUpdate(sub *domain.Subscription, req dto.UpdateSubscriptionRequest) error {
	if req.Name != nil {
		name, err := normalizeName(*req.Name)
		if err != nil {
			return err
		}
		sub.Name = name
	}

	amount := money.FromMinorUnits(sub.Price, sub.CurrencyCode)
	if req.Price != nil {
		if err := money.ValidateAmount(*req.Price); err != nil {
			return err
		}
		amount = *req.Price
	}

	if req.CurrencyCode != nil {
		if err := validateCurrency(*req.CurrencyCode); err != nil {
			return err
		}
		sub.CurrencyCode = *req.CurrencyCode
	}
	if req.Price != nil || req.CurrencyCode != nil {
		sub.Price = money.ToMinorUnits(amount, sub.CurrencyCode)
	}

	if req.BillingCycle != nil {
		cycle := domain.BillingCycle(*req.BillingCycle)
		if !cycle.IsValid() {
			return fmt.Errorf("%w: %q", domain.ErrUnknownBillingCycle, *req.BillingCycle)
		}
		sub.BillingCycle = cycle
	}

	if req.NextPaymentDate != nil {
		nextPayment, err := parseDate(*req.NextPaymentDate)
		if err != nil {
			return err
		}
		sub.NextPaymentDate = nextPayment
	}

	if req.Category != nil {
		category, err := normalizeCategory(*req.Category)
		if err != nil {
			return err
		}
		sub.Category = category
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}
	return nil
}

func (s *subscriptionService) DeleteSubscription(ctx context.Context, subscriptionID string, userID string) error {
	err := s.subscriptionRepo.DeleteSubscription(ctx, subscriptionID, userID)
	s.metrics.RecordSubscriptionWrite("delete", err)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete subscription", slog.String("subscription_id", subscriptionID))
		}
		return err
	}

	s.LogInfo(ctx, "Subscription deleted", slog.String("subscription_id", subscriptionID))
	return nil
}

const (
	maxNameLength     = 100
	maxCategoryLength = 50
)

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if len([]rune(name)) > maxNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", apperrors.ErrValidation, maxNameLength)
	}
	return name, nil
}

func normalizeCategory(category string) (string, error) {
	category = strings.TrimSpace(category)
	if len([]rune(category)) > maxCategoryLength {
		return "", fmt.Errorf("%w: category must be at most %d characters", apperrors.ErrValidation, maxCategoryLength)
	}
	return category, nil
}

func validateCurrency(code string) error {
	if !domain.IsSupportedCurrency(code) {
		return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, code)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: nextPaymentDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}
	return t, nil
}
