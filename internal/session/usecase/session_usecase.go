package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	"github.com/allisson/fxwallet/internal/timer"
	customValidation "github.com/allisson/fxwallet/internal/validation"
)

const refreshKey = "refresh"

// Config holds the timing policy of the session.
type Config struct {
	PollInterval time.Duration
	ExpiryLeeway time.Duration
}

// sessionUseCase implements SessionUseCase. The mutex guards the session, the poll
// handle and the epoch. Store writes happen under the lock so the persisted mirror
// always matches the published session.
type sessionUseCase struct {
	auth   AuthGateway
	store  SessionStore
	clock  clockwork.Clock
	cfg    Config
	logger *slog.Logger

	group singleflight.Group

	// ctx is the parent of the poll task; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	session sessionDomain.Session
	// epoch changes whenever a session starts or ends, so a refresh that raced with
	// logout or login cannot resurrect or overwrite the wrong session.
	epoch       uint64
	ready       bool
	poll        *timer.Task
	subscribers map[int]func(sessionDomain.Session)
	nextSubID   int
}

// NewSessionUseCase creates a SessionUseCase. Call Restore before use.
func NewSessionUseCase(
	auth AuthGateway,
	store SessionStore,
	clock clockwork.Clock,
	cfg Config,
	logger *slog.Logger,
) SessionUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &sessionUseCase{
		auth:        auth,
		store:       store,
		clock:       clock,
		cfg:         cfg,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		subscribers: make(map[int]func(sessionDomain.Session)),
	}
}

// Login validates credentials before any network call.
func (s *sessionUseCase) Login(ctx context.Context, username, password string) (sessionDomain.Session, error) {
	credentials := sessionDomain.Credentials{Username: username, Password: password}
	err := validation.ValidateStruct(&credentials,
		validation.Field(&credentials.Username, validation.Required, customValidation.NotBlank),
		validation.Field(&credentials.Password, validation.Required),
	)
	if err != nil {
		return sessionDomain.Session{}, customValidation.WrapValidationError(err)
	}

	grant, err := s.auth.Authenticate(ctx, credentials)
	if err != nil {
		return sessionDomain.Session{}, loginError(err)
	}
	if grant.User == nil {
		return sessionDomain.Session{}, fmt.Errorf("%w: response carries no user settings", sessionDomain.ErrUnreachable)
	}

	tokens := grant.TokenPair(s.clock.Now())
	user := *grant.User

	s.mu.Lock()
	if err := s.store.Save(ctx, tokens, user); err != nil {
		s.mu.Unlock()
		return sessionDomain.Session{}, apperrors.Wrap(err, "failed to persist session")
	}
	s.epoch++
	s.session = sessionDomain.Session{User: &user, Tokens: &tokens}
	s.ready = true
	s.startPollLocked()
	snapshot := s.session
	s.mu.Unlock()

	s.logger.Info("session started",
		slog.String("user_id", user.UserID),
		slog.Time("expires_at", tokens.ExpiresAt),
	)
	s.publish(snapshot)
	return snapshot, nil
}

// Logout never fails; store errors are logged.
func (s *sessionUseCase) Logout(ctx context.Context) {
	s.mu.Lock()
	s.endLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("session ended")
	s.publish(sessionDomain.Session{})
}

// Refresh runs the shared refresh under the manager's own context, so a caller giving
// up does not cancel it for the others.
func (s *sessionUseCase) Refresh(ctx context.Context) bool {
	ch := s.group.DoChan(refreshKey, func() (any, error) {
		return nil, s.refresh(s.ctx)
	})

	select {
	case res := <-ch:
		return res.Err == nil
	case <-ctx.Done():
		return false
	}
}

func (s *sessionUseCase) refresh(ctx context.Context) error {
	s.mu.Lock()
	current := s.session.Tokens
	epoch := s.epoch
	s.mu.Unlock()

	if current == nil {
		s.Logout(ctx)
		return sessionDomain.ErrNoSession
	}

	grant, err := s.auth.Refresh(ctx, *current)
	if err != nil && ctx.Err() != nil {
		// Closed while refreshing; keep the persisted session for the next start.
		return err
	}
	if err != nil {
		s.logger.Warn("token refresh failed", slog.Any("error", err))
		s.endIfEpoch(ctx, epoch)
		return sessionDomain.ErrSessionEnded
	}

	tokens := grant.TokenPair(s.clock.Now())

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return sessionDomain.ErrSessionEnded
	}
	if err := s.store.SetTokens(ctx, tokens); err != nil {
		s.mu.Unlock()
		s.logger.Error("failed to persist refreshed tokens", slog.Any("error", err))
		s.endIfEpoch(ctx, epoch)
		return sessionDomain.ErrSessionEnded
	}
	s.session.Tokens = &tokens
	snapshot := s.session
	s.mu.Unlock()

	s.logger.Debug("token refreshed", slog.Time("expires_at", tokens.ExpiresAt))
	s.publish(snapshot)
	return nil
}

// endIfEpoch logs out unless another login or logout already replaced the session.
func (s *sessionUseCase) endIfEpoch(ctx context.Context, epoch uint64) {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return
	}
	s.endLocked(ctx)
	s.mu.Unlock()

	s.logger.Info("session ended")
	s.publish(sessionDomain.Session{})
}

// Restore marks the manager ready even when loading fails, leaving it logged out.
func (s *sessionUseCase) Restore(ctx context.Context) (sessionDomain.Session, error) {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
		return sessionDomain.Session{}, apperrors.Wrap(err, "failed to restore session")
	}

	if !loaded.IsAuthenticated() {
		s.mu.Lock()
		s.ready = true
		s.mu.Unlock()
		return sessionDomain.Session{}, nil
	}

	s.mu.Lock()
	s.epoch++
	s.session = loaded
	s.mu.Unlock()

	if loaded.Tokens.IsExpired(s.clock.Now(), s.cfg.ExpiryLeeway) {
		s.logger.Info("restored session is expired, refreshing")
		s.Refresh(ctx)
	}

	s.mu.Lock()
	if s.session.IsAuthenticated() {
		s.startPollLocked()
	}
	s.ready = true
	snapshot := s.session
	s.mu.Unlock()

	if snapshot.IsAuthenticated() {
		s.publish(snapshot)
	}
	return snapshot, nil
}

func (s *sessionUseCase) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

func (s *sessionUseCase) Current() sessionDomain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// AccessToken refreshes (or joins a refresh) before handing out an expired token.
func (s *sessionUseCase) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	tokens := s.session.Tokens
	s.mu.Unlock()

	if tokens == nil {
		return "", sessionDomain.ErrNoSession
	}
	if !tokens.IsExpired(s.clock.Now(), s.cfg.ExpiryLeeway) {
		return tokens.AccessToken, nil
	}

	if !s.Refresh(ctx) {
		if err := ctx.Err(); err != nil {
			return "", apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
		}
		return "", sessionDomain.ErrSessionEnded
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Tokens == nil {
		return "", sessionDomain.ErrSessionEnded
	}
	return s.session.Tokens.AccessToken, nil
}

func (s *sessionUseCase) Subscribe(fn func(sessionDomain.Session)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *sessionUseCase) Close() {
	s.mu.Lock()
	poll := s.poll
	s.poll = nil
	s.mu.Unlock()

	s.cancel()
	poll.Close()
}

// pollOnce runs on every poll tick. Expiry is read from the persisted mirror.
func (s *sessionUseCase) pollOnce(ctx context.Context) {
	s.mu.Lock()
	authenticated := s.session.Tokens != nil
	s.mu.Unlock()

	if !authenticated || !s.store.IsTokenExpired(ctx) {
		return
	}
	s.Refresh(ctx)
}

// startPollLocked replaces any running poll. Must hold s.mu.
func (s *sessionUseCase) startPollLocked() {
	s.poll.Stop()
	s.poll = timer.Every(s.ctx, s.clock, s.cfg.PollInterval, s.pollOnce)
}

// endLocked clears the session. Must hold s.mu. The poll is stopped without waiting
// because endLocked can run on the poll goroutine itself.
func (s *sessionUseCase) endLocked(ctx context.Context) {
	s.poll.Stop()
	s.poll = nil
	s.epoch++
	s.session = sessionDomain.Session{}
	s.ready = true

	if err := s.store.Clear(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("failed to clear persisted session", slog.Any("error", err))
	}
}

func (s *sessionUseCase) publish(session sessionDomain.Session) {
	s.mu.Lock()
	subscribers := make([]func(sessionDomain.Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(session)
	}
}

// loginError classifies an authenticate failure.
func loginError(err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrProblem):
		return fmt.Errorf("%w: %w", sessionDomain.ErrInvalidCredentials, err)
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		return sessionDomain.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %w", sessionDomain.ErrUnreachable, err)
	}
}
