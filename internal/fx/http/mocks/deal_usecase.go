// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
)

// MockDealUseCase is a mock implementation of DealUseCase for testing.
type MockDealUseCase struct {
	mock.Mock
}

// RequestQuote mocks the RequestQuote method of DealUseCase.
func (m *MockDealUseCase) RequestQuote(ctx context.Context, request fxDomain.QuoteRequest) error {
	return m.Called(ctx, request).Error(0)
}

// BookDeal mocks the BookDeal method of DealUseCase.
func (m *MockDealUseCase) BookDeal(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Cancel mocks the Cancel method of DealUseCase.
func (m *MockDealUseCase) Cancel() error {
	return m.Called().Error(0)
}

// Reset mocks the Reset method of DealUseCase.
func (m *MockDealUseCase) Reset() error {
	return m.Called().Error(0)
}

// Abandon mocks the Abandon method of DealUseCase.
func (m *MockDealUseCase) Abandon() {
	m.Called()
}

// State mocks the State method of DealUseCase.
func (m *MockDealUseCase) State() fxUseCase.DealState {
	return m.Called().Get(0).(fxUseCase.DealState)
}

// Currencies mocks the Currencies method of DealUseCase.
func (m *MockDealUseCase) Currencies(ctx context.Context) (*fxUseCase.CurrencyLists, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fxUseCase.CurrencyLists), args.Error(1)
}

// Close mocks the Close method of DealUseCase.
func (m *MockDealUseCase) Close() {
	m.Called()
}
