package dto

import (
	"time"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
)

// StatementRequest holds the query string of GET /v1/statement. Dates are calendar
// days; empty ones are filled in by the use case.
type StatementRequest struct {
	AccountID    string    `form:"account_id"`
	CurrencyCode string    `form:"currency"`
	StartDate    time.Time `form:"start_date" time_format:"2006-01-02" time_utc:"1"`
	EndDate      time.Time `form:"end_date" time_format:"2006-01-02" time_utc:"1"`
}

// ToDomain converts the request to a statement query.
func (r StatementRequest) ToDomain() accountDomain.StatementQuery {
	return accountDomain.StatementQuery{
		AccountID:    r.AccountID,
		CurrencyCode: r.CurrencyCode,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
	}
}

// StatementResponse is an account statement with its totals.
type StatementResponse struct {
	Account      accountDomain.StatementAccount `json:"account"`
	StartDate    string                         `json:"start_date"`
	EndDate      string                         `json:"end_date"`
	Entries      []accountDomain.StatementEntry `json:"entries"`
	TotalDebits  float64                        `json:"total_debits"`
	TotalCredits float64                        `json:"total_credits"`
	NetChange    float64                        `json:"net_change"`
}

// MapStatementToResponse converts a domain statement to the API response.
func MapStatementToResponse(statement *accountDomain.Statement) StatementResponse {
	entries := statement.Entries
	if entries == nil {
		entries = []accountDomain.StatementEntry{}
	}
	return StatementResponse{
		Account:      statement.Account,
		StartDate:    statement.StartDate.Format(accountDomain.DateLayout),
		EndDate:      statement.EndDate.Format(accountDomain.DateLayout),
		Entries:      entries,
		TotalDebits:  statement.TotalDebits(),
		TotalCredits: statement.TotalCredits(),
		NetChange:    statement.NetChange(),
	}
}
