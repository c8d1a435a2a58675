package usecase

import (
	"context"
	"time"

	"github.com/allisson/fxwallet/internal/metrics"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, ok bool) {
	status := metrics.StatusSuccess
	if !ok {
		status = metrics.StatusError
	}
	s.metrics.RecordOperation(ctx, "session", operation, status)
	s.metrics.RecordDuration(ctx, "session", operation, time.Since(start), status)
}

// Login records metrics for login operations.
func (s *sessionUseCaseWithMetrics) Login(
	ctx context.Context,
	username, password string,
) (sessionDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Login(ctx, username, password)
	s.record(ctx, "login", start, err == nil)
	return session, err
}

// Logout records metrics for logout operations.
func (s *sessionUseCaseWithMetrics) Logout(ctx context.Context) {
	start := time.Now()
	s.next.Logout(ctx)
	s.record(ctx, "logout", start, true)
}

// Refresh records metrics for refresh operations.
func (s *sessionUseCaseWithMetrics) Refresh(ctx context.Context) bool {
	start := time.Now()
	ok := s.next.Refresh(ctx)
	s.record(ctx, "refresh", start, ok)
	return ok
}

// Restore records metrics for restore operations.
func (s *sessionUseCaseWithMetrics) Restore(ctx context.Context) (sessionDomain.Session, error) {
	start := time.Now()
	session, err := s.next.Restore(ctx)
	s.record(ctx, "restore", start, err == nil)
	return session, err
}

func (s *sessionUseCaseWithMetrics) Ready() bool {
	return s.next.Ready()
}

func (s *sessionUseCaseWithMetrics) Current() sessionDomain.Session {
	return s.next.Current()
}

func (s *sessionUseCaseWithMetrics) AccessToken(ctx context.Context) (string, error) {
	return s.next.AccessToken(ctx)
}

func (s *sessionUseCaseWithMetrics) Subscribe(fn func(sessionDomain.Session)) func() {
	return s.next.Subscribe(fn)
}

func (s *sessionUseCaseWithMetrics) Close() {
	s.next.Close()
}
