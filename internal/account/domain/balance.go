// Package domain defines account balances of the logged-in organization.
package domain

// Balance is the balance of one currency account.
type Balance struct {
	AccountID        string  `json:"account_id"`
	AccountNumber    string  `json:"account_number"`
	CurrencyCode     string  `json:"currency_code"`
	Balance          float64 `json:"balance"`
	BalanceAvailable float64 `json:"balance_available"`
	ActiveHoldsTotal float64 `json:"active_holds_total"`
}

// SpendableCurrencies returns, in order and without duplicates, the currencies with a
// positive available balance.
func SpendableCurrencies(balances []Balance) []string {
	seen := make(map[string]struct{}, len(balances))
	currencies := make([]string, 0, len(balances))
	for _, b := range balances {
		if b.BalanceAvailable <= 0 {
			continue
		}
		if _, ok := seen[b.CurrencyCode]; ok {
			continue
		}
		seen[b.CurrencyCode] = struct{}{}
		currencies = append(currencies, b.CurrencyCode)
	}
	return currencies
}
