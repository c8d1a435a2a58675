package dto

import (
	"time"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/timer"
)

// DealStateResponse is the deal workflow state as the client renders it.
type DealStateResponse struct {
	Step             string         `json:"step"`
	RemainingSeconds int            `json:"remaining_seconds"`
	Remaining        string         `json:"remaining"`
	Severity         string         `json:"severity"`
	Error            string         `json:"error,omitempty"`
	Actions          []string       `json:"actions"`
	Request          *QuoteRequest  `json:"request,omitempty"`
	Quote            *QuoteResponse `json:"quote,omitempty"`
	Deal             *DealResponse  `json:"deal,omitempty"`
}

// QuoteResponse is a priced quote.
type QuoteResponse struct {
	QuoteID          string    `json:"quote_id"`
	QuoteReference   string    `json:"quote_reference"`
	DealType         string    `json:"deal_type"`
	Rate             string    `json:"rate"`
	Symbol           string    `json:"symbol"`
	BuyAmount        string    `json:"buy_amount"`
	BuyCurrencyCode  string    `json:"buy_currency_code"`
	SellAmount       string    `json:"sell_amount"`
	SellCurrencyCode string    `json:"sell_currency_code"`
	ValueDate        string    `json:"value_date"`
	ExpirationTime   time.Time `json:"expiration_time"`
}

// DealResponse carries the references of a booked deal.
type DealResponse struct {
	DealReference    string `json:"deal_reference"`
	DepositReference string `json:"deposit_reference"`
}

// CurrencyListsResponse contains the currencies offered by the quote form.
type CurrencyListsResponse struct {
	Buy  []fxDomain.Currency `json:"buy"`
	Sell []fxDomain.Currency `json:"sell"`
}

// MapDealStateToResponse converts a workflow state to its API representation.
func MapDealStateToResponse(state fxUseCase.DealState) DealStateResponse {
	response := DealStateResponse{
		Step:             state.Step.Name(),
		RemainingSeconds: state.RemainingSeconds,
		Remaining:        timer.FormatSeconds(state.RemainingSeconds),
		Severity:         string(state.Severity),
		Error:            state.Error,
		Actions:          state.Actions,
	}

	switch s := state.Step.(type) {
	case fxDomain.QuotingStep:
		response.Request = &QuoteRequest{
			BuyCurrencyCode:    s.Request.BuyCurrencyCode,
			SellCurrencyCode:   s.Request.SellCurrencyCode,
			Amount:             s.Request.Amount,
			AmountCurrencyCode: s.Request.AmountCurrencyCode,
		}
	case fxDomain.SuccessStep:
		response.Deal = &DealResponse{
			DealReference:    s.Deal.DealReference,
			DepositReference: s.Deal.DepositReference,
		}
	}

	if quote, ok := fxDomain.ActiveQuote(state.Step); ok {
		response.Quote = mapQuote(quote)
	}
	return response
}

func mapQuote(quote fxDomain.Quote) *QuoteResponse {
	return &QuoteResponse{
		QuoteID:          quote.QuoteID,
		QuoteReference:   quote.QuoteReference,
		DealType:         quote.DealType,
		Rate:             quote.Rate,
		Symbol:           quote.Symbol,
		BuyAmount:        quote.BuyAmount,
		BuyCurrencyCode:  quote.BuyCurrencyCode,
		SellAmount:       quote.SellAmount,
		SellCurrencyCode: quote.SellCurrencyCode,
		ValueDate:        quote.ValueDate,
		ExpirationTime:   quote.ExpirationTime,
	}
}
