package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	accountMocks "github.com/allisson/fxwallet/internal/account/http/mocks"
	apperrors "github.com/allisson/fxwallet/internal/errors"
)

func TestRunBalances(t *testing.T) {
	ctx := context.Background()
	balances := []accountDomain.Balance{
		{AccountNumber: "100-1", CurrencyCode: "CAD", Balance: 1500, BalanceAvailable: 1400, ActiveHoldsTotal: 100},
		{AccountNumber: "100-2", CurrencyCode: "USD"},
	}

	t.Run("Success_Text", func(t *testing.T) {
		accounts := &accountMocks.MockAccountUseCase{}
		accounts.On("Balances", ctx).Return(balances, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunBalances(ctx, accounts, &out, "text"))

		require.Contains(t, out.String(), "CURRENCY")
		require.Contains(t, out.String(), "1400.00")
		require.Contains(t, out.String(), "100-2")
	})

	t.Run("Success_JSON", func(t *testing.T) {
		accounts := &accountMocks.MockAccountUseCase{}
		accounts.On("Balances", ctx).Return(balances, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunBalances(ctx, accounts, &out, "json"))

		require.Contains(t, out.String(), `"spendable_currencies": [`)
		require.Contains(t, out.String(), `"CAD"`)
	})

	t.Run("Success_NoAccounts", func(t *testing.T) {
		accounts := &accountMocks.MockAccountUseCase{}
		accounts.On("Balances", ctx).Return([]accountDomain.Balance{}, nil).Once()

		var out bytes.Buffer
		require.NoError(t, RunBalances(ctx, accounts, &out, "text"))

		require.Equal(t, "No accounts\n", out.String())
	})

	t.Run("Error_NotLoggedIn", func(t *testing.T) {
		accounts := &accountMocks.MockAccountUseCase{}
		accounts.On("Balances", ctx).Return(nil, apperrors.Wrap(apperrors.ErrUnauthorized, "no active session")).Once()

		err := RunBalances(ctx, accounts, &bytes.Buffer{}, "text")

		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
