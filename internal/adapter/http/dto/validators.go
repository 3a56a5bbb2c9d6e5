package dto

import (
	"regexp"

	"address-valuation/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("chain_id", validateChainID)
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	}
}

// validateChainID accepts any supported chain, case-insensitively.
func validateChainID(fl validator.FieldLevel) bool {
	_, err := domain.ParseChainID(fl.Field().String())
	return err == nil
}

// validateCurrencyCode accepts three-letter ISO 4217 style codes.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodeRe.MatchString(fl.Field().String())
}
