package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fxwallet/internal/validation"
)

// Page bounds of a deal history search.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// DealSearch pages through booked deals, most recently booked first.
type DealSearch struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
}

// Validate checks the page bounds.
func (s DealSearch) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.PageIndex, validation.Min(0)),
		validation.Field(&s.PageSize, validation.Required, validation.Min(1), validation.Max(MaxPageSize)),
	)
	return customValidation.WrapValidationError(err)
}

// DealRecord is a booked deal. Amounts and rate are the server's display texts.
type DealRecord struct {
	DealID         string    `json:"deal_id"`
	DealReference  string    `json:"deal_reference"`
	DealTypeName   string    `json:"deal_type_name"`
	SellAmount     string    `json:"sell_amount"`
	BuyAmount      string    `json:"buy_amount"`
	BookedRate     string    `json:"booked_rate"`
	BookedTime     time.Time `json:"booked_time"`
	FinalValueDate string    `json:"final_value_date"`
}

// DealPage is one page of a deal search.
type DealPage struct {
	Deals      []DealRecord `json:"deals"`
	TotalCount int          `json:"total_count"`
	PageIndex  int          `json:"page_index"`
	PageSize   int          `json:"page_size"`
}
