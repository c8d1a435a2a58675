// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

// MockPaymentUseCase is a mock implementation of PaymentUseCase for testing.
type MockPaymentUseCase struct {
	mock.Mock
}

// LoadBalances mocks the LoadBalances method of PaymentUseCase.
func (m *MockPaymentUseCase) LoadBalances(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Review mocks the Review method of PaymentUseCase.
func (m *MockPaymentUseCase) Review(input paymentDomain.PaymentInput) error {
	return m.Called(input).Error(0)
}

// Back mocks the Back method of PaymentUseCase.
func (m *MockPaymentUseCase) Back() error {
	return m.Called().Error(0)
}

// CreateDraft mocks the CreateDraft method of PaymentUseCase.
func (m *MockPaymentUseCase) CreateDraft(ctx context.Context, input paymentDomain.PaymentInput) error {
	return m.Called(ctx, input).Error(0)
}

// Confirm mocks the Confirm method of PaymentUseCase.
func (m *MockPaymentUseCase) Confirm(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Reset mocks the Reset method of PaymentUseCase.
func (m *MockPaymentUseCase) Reset() error {
	return m.Called().Error(0)
}

// Abandon mocks the Abandon method of PaymentUseCase.
func (m *MockPaymentUseCase) Abandon() {
	m.Called()
}

// State mocks the State method of PaymentUseCase.
func (m *MockPaymentUseCase) State() paymentUseCase.PaymentState {
	return m.Called().Get(0).(paymentUseCase.PaymentState)
}
