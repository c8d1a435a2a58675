package gateway

import (
	"time"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

type statementResponse struct {
	AccountInfo *struct {
		AccountID            flexString `json:"accountId"`
		AccountNumber        string     `json:"accountNumber"`
		AccountName          string     `json:"accountName"`
		AccountCurrencyCode  string     `json:"accountCurrencyCode"`
		AccountCurrencyScale int        `json:"accountCurrencyScale"`
		BeginningBalance     float64    `json:"beginningBalance"`
		EndingBalance        float64    `json:"endingBalance"`
	} `json:"accountInfo"`
	Entries []struct {
		TransactionTime string  `json:"transactionTime"`
		TransactionType string  `json:"transactionType"`
		Description     string  `json:"description"`
		DebitAmount     float64 `json:"debitAmount"`
		CreditAmount    float64 `json:"creditAmount"`
		RunningBalance  float64 `json:"runningBalance"`
	} `json:"entries"`
}

func (r *statementResponse) toStatement(query accountDomain.StatementQuery) *accountDomain.Statement {
	statement := &accountDomain.Statement{
		Account:   accountDomain.StatementAccount{AccountID: query.AccountID},
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Entries:   make([]accountDomain.StatementEntry, 0, len(r.Entries)),
	}

	if info := r.AccountInfo; info != nil {
		statement.Account = accountDomain.StatementAccount{
			AccountID:        string(info.AccountID),
			AccountNumber:    info.AccountNumber,
			AccountName:      info.AccountName,
			CurrencyCode:     info.AccountCurrencyCode,
			CurrencyScale:    info.AccountCurrencyScale,
			BeginningBalance: info.BeginningBalance,
			EndingBalance:    info.EndingBalance,
		}
	}

	for _, e := range r.Entries {
		statement.Entries = append(statement.Entries, accountDomain.StatementEntry{
			TransactionTime: optionalServerTime(e.TransactionTime),
			TransactionType: e.TransactionType,
			Description:     e.Description,
			DebitAmount:     e.DebitAmount,
			CreditAmount:    e.CreditAmount,
			RunningBalance:  e.RunningBalance,
		})
	}
	return statement
}

type paymentSearchResponse struct {
	Records *struct {
		Payments []struct {
			PaymentID        flexString `json:"paymentId"`
			PaymentReference string     `json:"paymentReference"`
			FromCustomer     string     `json:"fromCustomerAlias"`
			ToCustomer       string     `json:"toCustomerAlias"`
			FromCustomerName string     `json:"fromCustomerName"`
			ToCustomerName   string     `json:"toCustomerName"`
			Amount           float64    `json:"amount"`
			CurrencyCode     string     `json:"currencyCode"`
			Status           string     `json:"status"`
			CreatedTime      string     `json:"createdTime"`
			ValueDate        string     `json:"valueDate"`
			Memo             string     `json:"memo"`
		} `json:"payments"`
		TotalCount int `json:"totalCount"`
		PageIndex  int `json:"pageIndex"`
		PageSize   int `json:"pageSize"`
	} `json:"records"`
}

func (r *paymentSearchResponse) toPage(search paymentDomain.PaymentSearch) *paymentDomain.PaymentPage {
	page := &paymentDomain.PaymentPage{
		Payments:  []paymentDomain.PaymentRecord{},
		PageIndex: search.PageIndex,
		PageSize:  search.PageSize,
	}
	if r.Records == nil {
		return page
	}

	page.TotalCount = r.Records.TotalCount
	for _, p := range r.Records.Payments {
		page.Payments = append(page.Payments, paymentDomain.PaymentRecord{
			PaymentID:        string(p.PaymentID),
			PaymentReference: p.PaymentReference,
			FromCustomer:     p.FromCustomer,
			ToCustomer:       p.ToCustomer,
			FromCustomerName: p.FromCustomerName,
			ToCustomerName:   p.ToCustomerName,
			Amount:           p.Amount,
			CurrencyCode:     p.CurrencyCode,
			Status:           p.Status,
			CreatedTime:      optionalServerTime(p.CreatedTime),
			ValueDate:        p.ValueDate,
			Memo:             p.Memo,
		})
	}
	if page.TotalCount < len(page.Payments) {
		page.TotalCount = len(page.Payments)
	}
	return page
}

type dealSearchResponse struct {
	FXDeals []struct {
		FXDealID                        flexString `json:"fxDealId"`
		FXDealReference                 string     `json:"fxDealReference"`
		FXDealTypeName                  string     `json:"fxDealTypeName"`
		SellAmountTextWithCurrencyCode  string     `json:"sellAmountTextWithCurrencyCode"`
		BuyAmountTextWithCurrencyCode   string     `json:"buyAmountTextWithCurrencyCode"`
		BookedRateTextWithCurrencyCodes string     `json:"bookedRateTextWithCurrencyCodes"`
		BookedTime                      string     `json:"bookedTime"`
		FinalValueDate                  string     `json:"finalValueDate"`
	} `json:"fxDeals"`
	TotalCount int `json:"totalCount"`
}

func (r *dealSearchResponse) toPage(search fxDomain.DealSearch) *fxDomain.DealPage {
	page := &fxDomain.DealPage{
		Deals:      make([]fxDomain.DealRecord, 0, len(r.FXDeals)),
		TotalCount: r.TotalCount,
		PageIndex:  search.PageIndex,
		PageSize:   search.PageSize,
	}
	for _, d := range r.FXDeals {
		page.Deals = append(page.Deals, fxDomain.DealRecord{
			DealID:         string(d.FXDealID),
			DealReference:  d.FXDealReference,
			DealTypeName:   d.FXDealTypeName,
			SellAmount:     d.SellAmountTextWithCurrencyCode,
			BuyAmount:      d.BuyAmountTextWithCurrencyCode,
			BookedRate:     d.BookedRateTextWithCurrencyCodes,
			BookedTime:     optionalServerTime(d.BookedTime),
			FinalValueDate: d.FinalValueDate,
		})
	}
	if page.TotalCount < len(page.Deals) {
		page.TotalCount = len(page.Deals)
	}
	return page
}

// optionalServerTime parses a listing timestamp. An unreadable one is left zero so a
// single bad row does not hide the rest of the page.
func optionalServerTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := parseServerTime(value)
	if err != nil {
		return time.Time{}
	}
	return t
}
