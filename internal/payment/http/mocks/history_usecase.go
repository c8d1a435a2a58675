package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

// MockHistoryUseCase is a mock implementation of HistoryUseCase for testing.
type MockHistoryUseCase struct {
	mock.Mock
}

// Search mocks the Search method of HistoryUseCase.
func (m *MockHistoryUseCase) Search(
	ctx context.Context,
	search paymentDomain.PaymentSearch,
) (*paymentDomain.PaymentPage, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentDomain.PaymentPage), args.Error(1)
}
