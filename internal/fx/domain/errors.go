package domain

import (
	"github.com/allisson/fxwallet/internal/errors"
)

// Deal workflow errors.
var (
	// ErrQuoteExpired indicates an action on a quote whose countdown reached zero.
	ErrQuoteExpired = errors.Wrap(errors.ErrInvalidTransition, "quote expired")

	// ErrSameCurrency indicates buy and sell currencies are equal.
	ErrSameCurrency = errors.Wrap(errors.ErrInvalidInput, "buy and sell currencies must differ")
)

// User-facing messages for transport failures.
const (
	MsgQuoteUnavailable   = "Failed to get quote. Please try again."
	MsgBookingUnavailable = "Failed to book deal. Please try again."
	MsgQuoteExpired       = "Quote has expired. Please request a new quote."
)
