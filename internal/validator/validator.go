// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// venueCodes are the exchange venues the registry accepts.
var venueCodes = map[string]bool{
	"NYSE":   true,
	"NASDAQ": true,
	"LSEG":   true,
	"EUREX":  true,
	"TSE":    true,
	"HKEX":   true,
	"ASX":    true,
}

// currencyCodes are the ISO 4217 codes the desk trades in.
var currencyCodes = map[string]bool{
	"USD": true, "GBP": true, "EUR": true, "JPY": true,
	"HKD": true, "AUD": true, "CAD": true, "CHF": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("asset_class", validateAssetClass)
		_ = v.RegisterValidation("venue_code", validateVenueCode)
		_ = v.RegisterValidation("security_status", validateSecurityStatus)
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
	}
}

func validateAssetClass(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Equity", "Fixed Income", "ETF", "Derivative", "Fund":
		return true
	}
	return false
}

func validateVenueCode(fl validator.FieldLevel) bool {
	return venueCodes[fl.Field().String()]
}

func validateSecurityStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Pre-Issue", "Active", "Matured", "Defaulted", "Retired":
		return true
	}
	return false
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodes[fl.Field().String()]
}
