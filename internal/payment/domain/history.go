package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fxwallet/internal/validation"
)

// Page bounds of a history search.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// DefaultHistoryDays is the value date range searched when none is given.
const DefaultHistoryDays = 30

// PaymentSearch filters instant payments by value date, newest first.
type PaymentSearch struct {
	ValueDateMin time.Time `json:"value_date_min"`
	ValueDateMax time.Time `json:"value_date_max"`
	PageIndex    int       `json:"page_index"`
	PageSize     int       `json:"page_size"`
}

// Validate checks the date range and page bounds.
func (s PaymentSearch) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.ValueDateMin, validation.Required),
		validation.Field(&s.ValueDateMax, validation.Required, validation.Min(s.ValueDateMin).Error("must not be before the start date")),
		validation.Field(&s.PageIndex, validation.Min(0)),
		validation.Field(&s.PageSize, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
	)
	return customValidation.WrapValidationError(err)
}

// PaymentRecord is a posted or pending instant payment as the server lists it.
type PaymentRecord struct {
	PaymentID        string    `json:"payment_id"`
	PaymentReference string    `json:"payment_reference"`
	FromCustomer     string    `json:"from_customer"`
	ToCustomer       string    `json:"to_customer"`
	FromCustomerName string    `json:"from_customer_name,omitempty"`
	ToCustomerName   string    `json:"to_customer_name,omitempty"`
	Amount           float64   `json:"amount"`
	CurrencyCode     string    `json:"currency_code"`
	Status           string    `json:"status"`
	CreatedTime      time.Time `json:"created_time"`
	ValueDate        string    `json:"value_date,omitempty"`
	Memo             string    `json:"memo,omitempty"`
}

// PaymentPage is one page of a payment search.
type PaymentPage struct {
	Payments   []PaymentRecord `json:"payments"`
	TotalCount int             `json:"total_count"`
	PageIndex  int             `json:"page_index"`
	PageSize   int             `json:"page_size"`
}
