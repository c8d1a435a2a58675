// Package usecase implements the FX quote-and-book workflow.
package usecase

import (
	"context"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	"github.com/allisson/fxwallet/internal/timer"
)

// QuoteGateway performs the remote FX operations.
type QuoteGateway interface {
	RequestQuote(ctx context.Context, request fxDomain.QuoteRequest) (*fxDomain.Quote, error)
	BookDeal(ctx context.Context, quoteID string) (*fxDomain.Deal, error)
	BuyCurrencies(ctx context.Context) ([]fxDomain.Currency, error)
	SellCurrencies(ctx context.Context) ([]fxDomain.Currency, error)
}

// DealState is what the presentation layer reads.
type DealState struct {
	Step             fxDomain.Step
	RemainingSeconds int
	Severity         timer.Severity
	Error            string
	Actions          []string
}

// CurrencyLists are the choices offered by the quote form.
type CurrencyLists struct {
	Buy  []fxDomain.Currency
	Sell []fxDomain.Currency
}

// DealUseCase is one FX deal workflow instance. Every transition is state-gated and
// returns ErrInvalidTransition when called from a step that does not allow it.
type DealUseCase interface {
	// RequestQuote validates request and prices it. Valid only from Form.
	RequestQuote(ctx context.Context, request fxDomain.QuoteRequest) error

	// BookDeal books the live quote. Valid only from Quote.
	BookDeal(ctx context.Context) error

	// Cancel discards the live quote. Valid only from Quote.
	Cancel() error

	// Reset starts a fresh instance. Valid from Form, Success and Expired.
	Reset() error

	// Abandon discards the instance from any step, dropping in-flight responses.
	Abandon()

	// State returns the current step, countdown, error and valid actions.
	State() DealState

	// Currencies loads the buy and sell currency lists.
	Currencies(ctx context.Context) (*CurrencyLists, error)

	// Close stops the countdown and waits for it.
	Close()
}

// HistoryGateway searches booked FX deals.
type HistoryGateway interface {
	SearchFXDeals(ctx context.Context, search fxDomain.DealSearch) (*fxDomain.DealPage, error)
}

// HistoryUseCase lists booked FX deals.
type HistoryUseCase interface {
	// Search returns one page of deals, most recently booked first. A zero page
	// size means DefaultPageSize.
	Search(ctx context.Context, search fxDomain.DealSearch) (*fxDomain.DealPage, error)
}
