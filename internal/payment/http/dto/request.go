// Package dto provides data transfer objects for the instant payment endpoints.
package dto

import (
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

// PaymentRequest contains the payment form for the review and draft endpoints. Field
// rules are enforced by the workflow so that failures surface in its state.
type PaymentRequest struct {
	ToCustomer   string  `json:"to_customer"`
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currency_code"`
	Memo         string  `json:"memo"`
}

// ToDomain converts the request to the workflow input.
func (r PaymentRequest) ToDomain() paymentDomain.PaymentInput {
	return paymentDomain.PaymentInput{
		ToCustomer:   r.ToCustomer,
		Amount:       r.Amount,
		CurrencyCode: r.CurrencyCode,
		Memo:         r.Memo,
	}
}
