package dto

import (
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/utils/money"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of nextPaymentDate.
const DateLayout = "2006-01-02"

// CreateSubscriptionRequest defines the data needed to create a new subscription.
// Price is a decimal in the currency's major unit, e.g. 9.99 for USD.
type CreateSubscriptionRequest struct {
	Name            string           `json:"name" binding:"required,max=100"`
	Price           *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"9.99"`
	CurrencyCode    string           `json:"currencyCode" binding:"omitempty,currency" example:"USD"` // Defaults to JPY
	BillingCycle    string           `json:"billingCycle" binding:"required,billingcycle" example:"monthly"`
	NextPaymentDate string           `json:"nextPaymentDate" binding:"required,datetime=2006-01-02" example:"2026-11-01"`
	Category        string           `json:"category" binding:"omitempty,max=50"`
	IsActive        *bool            `json:"isActive"` // Defaults to true
}

// UpdateSubscriptionRequest defines the data allowed for updating a subscription.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateSubscriptionRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Price           *decimal.Decimal `json:"price" swaggertype:"string"`
	CurrencyCode    *string          `json:"currencyCode" binding:"omitempty,currency"`
	BillingCycle    *string          `json:"billingCycle" binding:"omitempty,billingcycle"`
	NextPaymentDate *string          `json:"nextPaymentDate" binding:"omitempty,datetime=2006-01-02"`
	Category        *string          `json:"category" binding:"omitempty,max=50"`
	IsActive        *bool            `json:"isActive"`
}

// ListSubscriptionsParams defines query parameters for listing subscriptions.
type ListSubscriptionsParams struct {
	Active    *bool   `form:"active"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// SubscriptionResponse defines the data returned for a subscription.
type SubscriptionResponse struct {
	SubscriptionID             string              `json:"subscriptionID"`
	Name                       string              `json:"name"`
	Price                      string              `json:"price" example:"9.99"`
	PriceMinorUnits            int64               `json:"priceMinorUnits" example:"999"`
	FormattedPrice             string              `json:"formattedPrice" example:"$9.99"`
	CurrencyCode               string              `json:"currencyCode"`
	BillingCycle               domain.BillingCycle `json:"billingCycle"`
	MonthlyEquivalent          string              `json:"monthlyEquivalent" example:"9.99"`
	FormattedMonthlyEquivalent string              `json:"formattedMonthlyEquivalent" example:"$9.99"`
	NextPaymentDate            string              `json:"nextPaymentDate" example:"2026-11-01"`
	Category                   string              `json:"category"`
	IsActive                   bool                `json:"isActive"`
	CreatedAt                  time.Time           `json:"createdAt"`
	CreatedBy                  string              `json:"createdBy"`
	LastUpdatedAt              time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy              string              `json:"lastUpdatedBy"`
}

// CurrencyTotalResponse is the monthly-equivalent total of one currency.
type CurrencyTotalResponse struct {
	CurrencyCode   string `json:"currencyCode"`
	Total          string `json:"total" example:"24.99"`
	FormattedTotal string `json:"formattedTotal" example:"$24.99"`
}

// ListSubscriptionsResponse wraps the listed subscriptions and the totals of the active ones.
type ListSubscriptionsResponse struct {
	Subscriptions []SubscriptionResponse  `json:"subscriptions"`
	Totals        []CurrencyTotalResponse `json:"totals"`
	NextToken     *string                 `json:"nextToken,omitempty"`
}

// MonthlyTotalsResponse holds the per-currency monthly totals of active subscriptions.
type MonthlyTotalsResponse struct {
	Totals []CurrencyTotalResponse `json:"totals"`
}

// ToSubscriptionResponse converts a domain.Subscription to SubscriptionResponse DTO
func ToSubscriptionResponse(sub *domain.Subscription) SubscriptionResponse {
	currency := domain.LookupCurrency(sub.CurrencyCode)
	price := money.FromMinorUnits(sub.Price, sub.CurrencyCode)

	resp := SubscriptionResponse{
		SubscriptionID:  sub.SubscriptionID,
		Name:            sub.Name,
		Price:           price.StringFixed(int32(currency.Precision)),
		PriceMinorUnits: sub.Price,
		FormattedPrice:  money.FormatFromMinorUnits(sub.Price, sub.CurrencyCode),
		CurrencyCode:    sub.CurrencyCode,
		BillingCycle:    sub.BillingCycle,
		NextPaymentDate: sub.NextPaymentDate.Format(DateLayout),
		Category:        sub.Category,
		IsActive:        sub.IsActive,
		CreatedAt:       sub.CreatedAt,
		CreatedBy:       sub.CreatedBy,
		LastUpdatedAt:   sub.LastUpdatedAt,
		LastUpdatedBy:   sub.LastUpdatedBy,
	}

	// Stored cycles are validated on write; an unknown one leaves the fields empty.
	if monthly, err := money.MonthlyEquivalent(price, sub.BillingCycle); err == nil {
		resp.MonthlyEquivalent = monthly.String()
		resp.FormattedMonthlyEquivalent = money.FormatDecimal(monthly, sub.CurrencyCode)
	}
	return resp
}

// ToListSubscriptionResponse converts a slice of domain.Subscription to a slice of SubscriptionResponse DTOs
func ToListSubscriptionResponse(subs []domain.Subscription) []SubscriptionResponse {
	res := make([]SubscriptionResponse, len(subs))
	for i, sub := range subs {
		res[i] = ToSubscriptionResponse(&sub)
	}
	return res
}

// ToCurrencyTotalResponses renders aggregated totals in registry order.
func ToCurrencyTotalResponses(totals money.AggregatedTotals) []CurrencyTotalResponse {
	ordered := totals.Ordered()
	res := make([]CurrencyTotalResponse, len(ordered))
	for i, t := range ordered {
		res[i] = CurrencyTotalResponse{
			CurrencyCode:   t.CurrencyCode,
			Total:          t.Total.String(),
			FormattedTotal: money.FormatDecimal(t.Total, t.CurrencyCode),
		}
	}
	return res
}
