package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	apperrors "github.com/allisson/fxwallet/internal/errors"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// accountUseCase implements AccountUseCase.
type accountUseCase struct {
	gateway  AccountGateway
	sessions SessionSource
	clock    clockwork.Clock
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(gateway AccountGateway, sessions SessionSource, clock clockwork.Clock) AccountUseCase {
	return &accountUseCase{
		gateway:  gateway,
		sessions: sessions,
		clock:    clock,
	}
}

func (a *accountUseCase) Balances(ctx context.Context) ([]accountDomain.Balance, error) {
	session, err := a.session()
	if err != nil {
		return nil, err
	}
	return a.gateway.Balances(ctx, session.User.OrganizationID)
}

func (a *accountUseCase) SpendableCurrencies(ctx context.Context) ([]string, error) {
	balances, err := a.Balances(ctx)
	if err != nil {
		return nil, err
	}
	return accountDomain.SpendableCurrencies(balances), nil
}

func (a *accountUseCase) Statement(
	ctx context.Context,
	query accountDomain.StatementQuery,
) (*accountDomain.Statement, error) {
	session, err := a.session()
	if err != nil {
		return nil, err
	}

	query.AccountID = strings.TrimSpace(query.AccountID)
	query.CurrencyCode = strings.ToUpper(strings.TrimSpace(query.CurrencyCode))
	if query.EndDate.IsZero() {
		query.EndDate = calendarDate(a.clock.Now())
	}
	if query.StartDate.IsZero() {
		query.StartDate = query.EndDate.AddDate(0, 0, -accountDomain.DefaultStatementDays)
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.AccountID == "" {
		balances, err := a.gateway.Balances(ctx, session.User.OrganizationID)
		if err != nil {
			return nil, err
		}
		account, ok := accountDomain.FindAccount(balances, query.CurrencyCode)
		if !ok {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Sprintf("no %s account", query.CurrencyCode))
		}
		query.AccountID = account.AccountID
	}

	return a.gateway.Statement(ctx, query)
}

func (a *accountUseCase) session() (sessionDomain.Session, error) {
	session := a.sessions.Current()
	if !session.IsAuthenticated() {
		return sessionDomain.Session{}, apperrors.Wrap(apperrors.ErrUnauthorized, "no active session")
	}
	return session, nil
}

// calendarDate drops the time of day, in UTC.
func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
