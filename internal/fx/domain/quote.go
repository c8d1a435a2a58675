// Package domain defines FX quotes, booked deals and the steps of the deal workflow.
package domain

import (
	"time"
)

// DealTypeSpot is the only deal type the wallet requests.
const DealTypeSpot = "SPOT"

// QuoteRequest is the user's input for a new quote. Amount is denominated in
// AmountCurrencyCode, which must be either the buy or the sell currency.
type QuoteRequest struct {
	BuyCurrencyCode    string  `json:"buy_currency_code"`
	SellCurrencyCode   string  `json:"sell_currency_code"`
	Amount             float64 `json:"amount"`
	AmountCurrencyCode string  `json:"amount_currency_code"`
}

// Quote is a server-issued price valid until ExpirationTime. Amounts are kept as the
// server formats them.
type Quote struct {
	QuoteID               string    `json:"quote_id"`
	QuoteReference        string    `json:"quote_reference"`
	QuoteSequenceNumber   string    `json:"quote_sequence_number"`
	CustomerAccountNumber string    `json:"customer_account_number"`
	DealType              string    `json:"deal_type"`
	Rate                  string    `json:"rate"`
	Symbol                string    `json:"symbol"`
	BuyAmount             string    `json:"buy_amount"`
	BuyCurrencyCode       string    `json:"buy_currency_code"`
	SellAmount            string    `json:"sell_amount"`
	SellCurrencyCode      string    `json:"sell_currency_code"`
	DealDate              string    `json:"deal_date"`
	ValueDate             string    `json:"value_date"`
	QuoteTime             time.Time `json:"quote_time"`
	ExpirationTime        time.Time `json:"expiration_time"`
}

// Deal is the result of booking a quote together with its instant deposit.
type Deal struct {
	DealID           string `json:"deal_id"`
	DealReference    string `json:"deal_reference"`
	DepositID        string `json:"deposit_id"`
	DepositReference string `json:"deposit_reference"`
}

// Currency is an entry of the buy or sell currency list.
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}
