package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/fxwallet/internal/validation"
)

// DateLayout is the calendar date format of statement and history ranges.
const DateLayout = "2006-01-02"

// DefaultStatementDays is the range used when a statement query gives no start date.
const DefaultStatementDays = 30

// StatementQuery selects the account and the inclusive date range of a statement. When
// AccountID is empty the account holding CurrencyCode is used.
type StatementQuery struct {
	AccountID    string    `json:"account_id"`
	CurrencyCode string    `json:"currency_code"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

// Validate checks that an account is identified and the range is not inverted.
func (q StatementQuery) Validate() error {
	err := validation.ValidateStruct(&q,
		validation.Field(&q.AccountID, validation.When(q.CurrencyCode == "", validation.Required.Error("account id or currency code is required"))),
		validation.Field(&q.CurrencyCode, customValidation.CurrencyCode),
		validation.Field(&q.StartDate, validation.Required),
		validation.Field(&q.EndDate, validation.Required, validation.Min(q.StartDate).Error("must not be before the start date")),
	)
	return customValidation.WrapValidationError(err)
}

// StatementAccount describes the account a statement was produced for.
type StatementAccount struct {
	AccountID        string  `json:"account_id"`
	AccountNumber    string  `json:"account_number"`
	AccountName      string  `json:"account_name"`
	CurrencyCode     string  `json:"currency_code"`
	CurrencyScale    int     `json:"currency_scale"`
	BeginningBalance float64 `json:"beginning_balance"`
	EndingBalance    float64 `json:"ending_balance"`
}

// StatementEntry is one posted transaction. Exactly one of DebitAmount and
// CreditAmount is normally non-zero.
type StatementEntry struct {
	TransactionTime time.Time `json:"transaction_time"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	DebitAmount     float64   `json:"debit_amount"`
	CreditAmount    float64   `json:"credit_amount"`
	RunningBalance  float64   `json:"running_balance"`
}

// Statement is the account activity between StartDate and EndDate.
type Statement struct {
	Account   StatementAccount
	StartDate time.Time
	EndDate   time.Time
	Entries   []StatementEntry
}

// TotalDebits sums the debit amounts of all entries.
func (s Statement) TotalDebits() float64 {
	var total float64
	for _, e := range s.Entries {
		total += e.DebitAmount
	}
	return total
}

// TotalCredits sums the credit amounts of all entries.
func (s Statement) TotalCredits() float64 {
	var total float64
	for _, e := range s.Entries {
		total += e.CreditAmount
	}
	return total
}

// NetChange is credits minus debits.
func (s Statement) NetChange() float64 {
	return s.TotalCredits() - s.TotalDebits()
}

// FindAccount returns the first balance in currencyCode.
func FindAccount(balances []Balance, currencyCode string) (Balance, bool) {
	for _, b := range balances {
		if b.CurrencyCode == currencyCode {
			return b, true
		}
	}
	return Balance{}, false
}
