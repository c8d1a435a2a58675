package domain

import (
	"github.com/allisson/fxwallet/internal/errors"
)

// Payment workflow errors.
var (
	// ErrCurrencyNotAllowed indicates the currency has no positive available balance.
	ErrCurrencyNotAllowed = errors.Wrap(errors.ErrInvalidInput, "currency has no available balance")

	// ErrDraftConsumed indicates a confirm on a draft that was already posted.
	ErrDraftConsumed = errors.Wrap(errors.ErrInvalidTransition, "payment already confirmed")
)

// User-facing messages for transport failures.
const (
	MsgCreateUnavailable  = "Failed to send payment. Please try again."
	MsgConfirmUnavailable = "Failed to confirm payment. Please try again."
)
