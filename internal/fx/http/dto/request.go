// Package dto provides data transfer objects for the FX deal endpoints.
package dto

import (
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
)

// QuoteRequest contains the parameters for POST /v1/fx/deal/quote. Field rules are
// enforced by the workflow so that failures surface in its state.
type QuoteRequest struct {
	BuyCurrencyCode    string  `json:"buy_currency_code"`
	SellCurrencyCode   string  `json:"sell_currency_code"`
	Amount             float64 `json:"amount"`
	AmountCurrencyCode string  `json:"amount_currency_code"`
}

// ToDomain converts the request to the workflow input.
func (r QuoteRequest) ToDomain() fxDomain.QuoteRequest {
	return fxDomain.QuoteRequest{
		BuyCurrencyCode:    r.BuyCurrencyCode,
		SellCurrencyCode:   r.SellCurrencyCode,
		Amount:             r.Amount,
		AmountCurrencyCode: r.AmountCurrencyCode,
	}
}
