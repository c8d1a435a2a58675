// Package dto provides response structures for the balances endpoint.
package dto

import (
	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
)

// BalanceResponse represents one currency account in API responses.
type BalanceResponse struct {
	AccountID        string  `json:"account_id"`
	AccountNumber    string  `json:"account_number"`
	CurrencyCode     string  `json:"currency_code"`
	Balance          float64 `json:"balance"`
	BalanceAvailable float64 `json:"balance_available"`
	ActiveHoldsTotal float64 `json:"active_holds_total"`
}

// BalancesResponse lists the balances and the currencies that can be spent.
type BalancesResponse struct {
	Data                []BalanceResponse `json:"data"`
	SpendableCurrencies []string          `json:"spendable_currencies"`
}

// MapBalancesToResponse converts domain balances to the API response.
func MapBalancesToResponse(balances []accountDomain.Balance) BalancesResponse {
	data := make([]BalanceResponse, 0, len(balances))
	for _, b := range balances {
		data = append(data, BalanceResponse{
			AccountID:        b.AccountID,
			AccountNumber:    b.AccountNumber,
			CurrencyCode:     b.CurrencyCode,
			Balance:          b.Balance,
			BalanceAvailable: b.BalanceAvailable,
			ActiveHoldsTotal: b.ActiveHoldsTotal,
		})
	}

	return BalancesResponse{
		Data:                data,
		SpendableCurrencies: accountDomain.SpendableCurrencies(balances),
	}
}
