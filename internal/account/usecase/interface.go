// Package usecase implements balance and statement queries for the logged-in organization.
package usecase

import (
	"context"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// AccountGateway fetches balances and statements from the remote authority.
type AccountGateway interface {
	Balances(ctx context.Context, organizationID string) ([]accountDomain.Balance, error)
	Statement(ctx context.Context, query accountDomain.StatementQuery) (*accountDomain.Statement, error)
}

// SessionSource exposes the current session.
type SessionSource interface {
	Current() sessionDomain.Session
}

// AccountUseCase defines the interface for balance and statement operations.
type AccountUseCase interface {
	// Balances lists the balances of the logged-in user's organization.
	Balances(ctx context.Context) ([]accountDomain.Balance, error)

	// SpendableCurrencies lists the currencies with a positive available balance.
	SpendableCurrencies(ctx context.Context) ([]string, error)

	// Statement fetches account activity. Zero dates default to the last
	// DefaultStatementDays days, and a query without an account id resolves the
	// account holding its currency code. Returns ErrNotFound when no account does.
	Statement(ctx context.Context, query accountDomain.StatementQuery) (*accountDomain.Statement, error)
}
