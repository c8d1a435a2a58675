package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpendableCurrencies(t *testing.T) {
	balances := []Balance{
		{CurrencyCode: "CAD", BalanceAvailable: 1500},
		{CurrencyCode: "USD", BalanceAvailable: 0},
		{CurrencyCode: "EUR", BalanceAvailable: -3},
		{CurrencyCode: "GBP", BalanceAvailable: 0.01},
		{CurrencyCode: "CAD", BalanceAvailable: 20},
	}

	assert.Equal(t, []string{"CAD", "GBP"}, SpendableCurrencies(balances))
	assert.Empty(t, SpendableCurrencies(nil))
}
