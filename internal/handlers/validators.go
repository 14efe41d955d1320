package handlers

import (
	"sync"

	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the subscription-specific tags to gin's validator:
// `currency` accepts registered currency codes and `billingcycle` accepts
// monthly/yearly.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return domain.IsSupportedCurrency(fl.Field().String())
		})
		_ = v.RegisterValidation("billingcycle", func(fl validator.FieldLevel) bool {
			return domain.BillingCycle(fl.Field().String()).IsValid()
		})
	})
}
