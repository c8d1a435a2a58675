// Package usecase implements the two-phase instant payment workflow.
package usecase

import (
	"context"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// PaymentGateway performs the remote payment operations.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, request paymentDomain.PaymentRequest) (*paymentDomain.Draft, error)
	ConfirmPayment(ctx context.Context, draft paymentDomain.Draft) error
}

// CurrencySource lists the currencies the user may pay in.
type CurrencySource interface {
	SpendableCurrencies(ctx context.Context) ([]string, error)
}

// SessionSource exposes the current session.
type SessionSource interface {
	Current() sessionDomain.Session
}

// PaymentState is what the presentation layer reads.
type PaymentState struct {
	Step       paymentDomain.Step
	Error      string
	Actions    []string
	Currencies []string
	Processing bool
}

// PaymentUseCase is one instant payment workflow instance. The draft is confirmed
// at most once and never re-created after a failed confirm.
type PaymentUseCase interface {
	// LoadBalances refreshes the allowed currency set.
	LoadBalances(ctx context.Context) ([]string, error)

	// Review validates input and moves Form to Review.
	Review(input paymentDomain.PaymentInput) error

	// Back moves Review to Form.
	Back() error

	// CreateDraft creates the server draft. Valid from Form and Review.
	CreateDraft(ctx context.Context, input paymentDomain.PaymentInput) error

	// Confirm posts the draft. Valid only from Confirm.
	Confirm(ctx context.Context) error

	// Reset clears the draft from any step without a call in flight.
	Reset() error

	// Abandon discards the instance from any step, dropping in-flight responses.
	Abandon()

	// State returns the current step, error and valid actions.
	State() PaymentState
}

// HistoryGateway searches posted instant payments.
type HistoryGateway interface {
	SearchPayments(ctx context.Context, search paymentDomain.PaymentSearch) (*paymentDomain.PaymentPage, error)
}

// HistoryUseCase lists past instant payments.
type HistoryUseCase interface {
	// Search returns one page of payments, newest first. A zero page size means
	// DefaultPageSize and zero dates mean the last DefaultHistoryDays days.
	Search(ctx context.Context, search paymentDomain.PaymentSearch) (*paymentDomain.PaymentPage, error)
}
