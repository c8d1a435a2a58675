// Package validation provides custom validation rules for the application.
package validation

import (
	"math"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/fxwallet/internal/errors"
)

var (
	// currencyCodeRegex matches ISO 4217 alphabetic codes
	currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// CurrencyCode validates a three-letter upper-case currency code
var CurrencyCode = validation.NewStringRuleWithError(
	func(s string) bool {
		return currencyCodeRegex.MatchString(s)
	},
	validation.NewError("validation_currency_code", "must be a three-letter currency code"),
)

// PositiveAmount validates that a float64 amount is finite and strictly greater than zero
var PositiveAmount = validation.By(func(value interface{}) error {
	amount, ok := value.(float64)
	if !ok {
		return validation.NewError("validation_amount_type", "must be a number")
	}
	if !(amount > 0) {
		return validation.NewError("validation_amount_positive", "must be greater than zero")
	}
	if math.IsInf(amount, 0) {
		return validation.NewError("validation_amount_finite", "must be a finite number")
	}
	return nil
})

// OneOfCurrencies validates that a currency code is in allowed. An empty allowed set
// rejects every code.
func OneOfCurrencies(allowed []string) validation.Rule {
	return validation.By(func(value interface{}) error {
		code, _ := value.(string)
		for _, candidate := range allowed {
			if candidate == code {
				return nil
			}
		}
		return validation.NewError("validation_currency_not_allowed", "must be a currency with available balance")
	})
}
