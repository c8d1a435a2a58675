package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/fxwallet/internal/errors"
)

func TestPaymentSearch_Validate(t *testing.T) {
	from := time.Date(2026, 9, 19, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		search  PaymentSearch
		wantErr string
	}{
		{name: "Success_DefaultPage", search: PaymentSearch{ValueDateMin: from, ValueDateMax: to, PageSize: DefaultPageSize}},
		{name: "Success_MaxPage", search: PaymentSearch{ValueDateMin: from, ValueDateMax: to, PageIndex: 3, PageSize: MaxPageSize}},
		{name: "Error_InvertedRange", search: PaymentSearch{ValueDateMin: to, ValueDateMax: from, PageSize: 10}, wantErr: "must not be before the start date"},
		{name: "Error_PageTooLarge", search: PaymentSearch{ValueDateMin: from, ValueDateMax: to, PageSize: MaxPageSize + 1}, wantErr: "page_size"},
		{name: "Error_NegativePage", search: PaymentSearch{ValueDateMin: from, ValueDateMax: to, PageIndex: -1, PageSize: 10}, wantErr: "page_index"},
		{name: "Error_MissingDates", search: PaymentSearch{PageSize: 10}, wantErr: "value_date_min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.search.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
