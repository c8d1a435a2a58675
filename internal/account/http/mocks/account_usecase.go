// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
)

// MockAccountUseCase is a mock implementation of AccountUseCase for testing.
type MockAccountUseCase struct {
	mock.Mock
}

// Balances mocks the Balances method of AccountUseCase.
func (m *MockAccountUseCase) Balances(ctx context.Context) ([]accountDomain.Balance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]accountDomain.Balance), args.Error(1)
}

// SpendableCurrencies mocks the SpendableCurrencies method of AccountUseCase.
func (m *MockAccountUseCase) SpendableCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Statement mocks the Statement method of AccountUseCase.
func (m *MockAccountUseCase) Statement(
	ctx context.Context,
	query accountDomain.StatementQuery,
) (*accountDomain.Statement, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accountDomain.Statement), args.Error(1)
}
