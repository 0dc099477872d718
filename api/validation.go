package api

import (
	"slices"
	"strings"
	"sync"

	"github.com/SwiftFiat/SwiftFiat-Ledger/providers"
	"github.com/SwiftFiat/SwiftFiat-Ledger/services/currency"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators adds the `currency` and `fiatprovider` binding tags.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency", validCurrency)
			_ = v.RegisterValidation("fiatprovider", validProvider)
		}
	})
}

var validCurrency validator.Func = func(fl validator.FieldLevel) bool {
	c, ok := fl.Field().Interface().(string)
	return ok && slices.Contains(currency.SupportedCurrencies, strings.ToUpper(c))
}

var validProvider validator.Func = func(fl validator.FieldLevel) bool {
	p, ok := fl.Field().Interface().(string)
	return ok && validProviderName(p)
}

func validProviderName(p string) bool {
	switch strings.ToUpper(p) {
	case providers.Paystack, providers.Monnify:
		return true
	}
	return false
}
