// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// MockSessionUseCase is a mock implementation of SessionUseCase for testing.
type MockSessionUseCase struct {
	mock.Mock
}

// Login mocks the Login method of SessionUseCase.
func (m *MockSessionUseCase) Login(ctx context.Context, username, password string) (sessionDomain.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(sessionDomain.Session), args.Error(1)
}

// Logout mocks the Logout method of SessionUseCase.
func (m *MockSessionUseCase) Logout(ctx context.Context) {
	m.Called(ctx)
}

// Refresh mocks the Refresh method of SessionUseCase.
func (m *MockSessionUseCase) Refresh(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// Restore mocks the Restore method of SessionUseCase.
func (m *MockSessionUseCase) Restore(ctx context.Context) (sessionDomain.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(sessionDomain.Session), args.Error(1)
}

// Ready mocks the Ready method of SessionUseCase.
func (m *MockSessionUseCase) Ready() bool {
	return m.Called().Bool(0)
}

// Current mocks the Current method of SessionUseCase.
func (m *MockSessionUseCase) Current() sessionDomain.Session {
	return m.Called().Get(0).(sessionDomain.Session)
}

// AccessToken mocks the AccessToken method of SessionUseCase.
func (m *MockSessionUseCase) AccessToken(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Subscribe mocks the Subscribe method of SessionUseCase.
func (m *MockSessionUseCase) Subscribe(fn func(sessionDomain.Session)) func() {
	m.Called(fn)
	return func() {}
}

// Close mocks the Close method of SessionUseCase.
func (m *MockSessionUseCase) Close() {
	m.Called()
}
