package validation

import (
	"errors"
	"math"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/fxwallet/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("amount: must be greater than zero"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "amount: must be greater than zero")
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{name: "valid", value: "alice@pay", shouldErr: false},
		{name: "spaces only", value: "   ", shouldErr: true},
		{name: "tabs and newlines", value: "\t\n", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, NotBlank)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, validation.Validate("jdoe", NoWhitespace))
	assert.Error(t, validation.Validate(" jdoe", NoWhitespace))
}

func TestCurrencyCode(t *testing.T) {
	tests := []struct {
		value     string
		shouldErr bool
	}{
		{value: "USD", shouldErr: false},
		{value: "usd", shouldErr: true},
		{value: "US", shouldErr: true},
		{value: "USDT", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := validation.Validate(tt.value, CurrencyCode)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPositiveAmount(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		shouldErr bool
	}{
		{name: "positive", value: 0.01, shouldErr: false},
		{name: "zero", value: 0.0, shouldErr: true},
		{name: "negative", value: -5.0, shouldErr: true},
		{name: "nan", value: math.NaN(), shouldErr: true},
		{name: "positive infinity", value: math.Inf(1), shouldErr: true},
		{name: "negative infinity", value: math.Inf(-1), shouldErr: true},
		{name: "not a float", value: "100", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, PositiveAmount)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOneOfCurrencies(t *testing.T) {
	rule := OneOfCurrencies([]string{"CAD", "USD"})

	assert.NoError(t, validation.Validate("USD", rule))
	assert.Error(t, validation.Validate("EUR", rule))
	assert.Error(t, validation.Validate("USD", OneOfCurrencies(nil)))
}
