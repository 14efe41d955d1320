package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
)

// currencyService serves the static currency registry.
type currencyService struct {
	BaseService
}

func NewCurrencyService() portssvc.CurrencySvcFacade {
	return &currencyService{}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// GetCurrencyByCode is strict: unlike domain.LookupCurrency it does not fall
// back to the default currency.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !domain.IsSupportedCurrency(code) {
		s.LogDebug(ctx, "Currency not registered", slog.String("currency_code", currencyCode))
		return nil, fmt.Errorf("%w: currency %q", apperrors.ErrNotFound, currencyCode)
	}
	currency := domain.LookupCurrency(code)
	return &currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return domain.SupportedCurrencies(), nil
}
