package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

type authenticateRequest struct {
	LoginID                             string `json:"loginId"`
	Password                            string `json:"password"` //nolint:gosec // sent to the remote authority only
	CallerID                            string `json:"callerId"`
	IncludeUserSettingsInResponse       bool   `json:"includeUserSettingsInResponse"`
	IncludeAccessRightsWithUserSettings bool   `json:"includeAccessRightsWithUserSettings"`
}

type refreshRequest struct {
	AccessToken  string `json:"accessToken"`  //nolint:gosec // bearer token
	RefreshToken string `json:"refreshToken"` //nolint:gosec // refresh token
}

type tokensResponse struct {
	AccessToken                 string `json:"accessToken"`  //nolint:gosec // bearer token
	AccessTokenExpiresInMinutes int    `json:"accessTokenExpiresInMinutes"`
	RefreshToken                string `json:"refreshToken"` //nolint:gosec // refresh token
	RefreshTokenExpiresInHours  int    `json:"refreshTokenExpiresInHours"`
}

type userSettingsResponse struct {
	UserID            string `json:"userId"`
	UserName          string `json:"userName"`
	OrganizationID    string `json:"organizationId"`
	OrganizationName  string `json:"organizationName"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	EmailAddress      string `json:"emailAddress"`
	BranchName        string `json:"branchName"`
	BaseCurrencyCode  string `json:"baseCurrencyCode"`
	PreferredLanguage string `json:"preferredLanguage"`
	CultureCode       string `json:"cultureCode"`
	IsEnabled         bool   `json:"isEnabled"`
	IsLockedOut       bool   `json:"isLockedOut"`
}

type authResponse struct {
	Tokens       *tokensResponse       `json:"tokens"`
	UserSettings *userSettingsResponse `json:"userSettings"`
}

func (r *authResponse) toGrant() (*sessionDomain.Grant, error) {
	if r.Tokens == nil || r.Tokens.AccessToken == "" || r.Tokens.RefreshToken == "" {
		return nil, fmt.Errorf("response carries no tokens")
	}

	grant := &sessionDomain.Grant{
		AccessToken:                r.Tokens.AccessToken,
		RefreshToken:               r.Tokens.RefreshToken,
		AccessTokenLifetimeMinutes: r.Tokens.AccessTokenExpiresInMinutes,
		RefreshTokenLifetimeHours:  r.Tokens.RefreshTokenExpiresInHours,
	}
	if u := r.UserSettings; u != nil {
		grant.User = &sessionDomain.UserProfile{
			UserID:            u.UserID,
			UserName:          u.UserName,
			OrganizationID:    u.OrganizationID,
			OrganizationName:  u.OrganizationName,
			FirstName:         u.FirstName,
			LastName:          u.LastName,
			EmailAddress:      u.EmailAddress,
			BranchName:        u.BranchName,
			BaseCurrencyCode:  u.BaseCurrencyCode,
			PreferredLanguage: u.PreferredLanguage,
			CultureCode:       u.CultureCode,
			IsEnabled:         u.IsEnabled,
			IsLockedOut:       u.IsLockedOut,
		}
	}
	return grant, nil
}

type quoteRequest struct {
	BuyCurrencyCode         string  `json:"buyCurrencyCode"`
	SellCurrencyCode        string  `json:"sellCurrencyCode"`
	Amount                  float64 `json:"amount"`
	AmountCurrencyCode      string  `json:"amountCurrencyCode"`
	DealType                string  `json:"dealType"`
	WindowOpenDate          string  `json:"windowOpenDate"`
	FinalValueDate          string  `json:"finalValueDate"`
	IsForCurrencyCalculator bool    `json:"isForCurrencyCalculator"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type quoteDTO struct {
	QuoteID               string     `json:"quoteId"`
	QuoteReference        string     `json:"quoteReference"`
	QuoteSequenceNumber   flexString `json:"quoteSequenceNumber"`
	CustomerAccountNumber string     `json:"customerAccountNumber"`
	DealType              string     `json:"dealType"`
	BuyAmount             flexString `json:"buyAmount"`
	BuyCurrencyCode       string     `json:"buyCurrencyCode"`
	SellAmount            flexString `json:"sellAmount"`
	SellCurrencyCode      string     `json:"sellCurrencyCode"`
	Rate                  flexString `json:"rate"`
	Symbol                string     `json:"symbol"`
	DealDate              string     `json:"dealDate"`
	ValueDate             string     `json:"valueDate"`
	QuoteTime             string     `json:"quoteTime"`
	ExpirationTime        string     `json:"expirationTime"`
}

type quoteResponse struct {
	Quote *quoteDTO `json:"quote"`
}

func (r *quoteResponse) toQuote() (*fxDomain.Quote, error) {
	q := r.Quote
	if q == nil || q.QuoteID == "" {
		return nil, fmt.Errorf("response carries no quote")
	}

	expiresAt, err := parseServerTime(q.ExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid quote expiration time: %w", err)
	}
	quotedAt, err := parseServerTime(q.QuoteTime)
	if err != nil {
		quotedAt = time.Time{}
	}

	return &fxDomain.Quote{
		QuoteID:               q.QuoteID,
		QuoteReference:        q.QuoteReference,
		QuoteSequenceNumber:   string(q.QuoteSequenceNumber),
		CustomerAccountNumber: q.CustomerAccountNumber,
		DealType:              q.DealType,
		Rate:                  string(q.Rate),
		Symbol:                q.Symbol,
		BuyAmount:             string(q.BuyAmount),
		BuyCurrencyCode:       q.BuyCurrencyCode,
		SellAmount:            string(q.SellAmount),
		SellCurrencyCode:      q.SellCurrencyCode,
		DealDate:              q.DealDate,
		ValueDate:             q.ValueDate,
		QuoteTime:             quotedAt,
		ExpirationTime:        expiresAt,
	}, nil
}

type bookResponse struct {
	FXDepositData *struct {
		FXDealID         string `json:"fxDealId"`
		FXDealReference  string `json:"fxDealReference"`
		DepositID        string `json:"depositId"`
		DepositReference string `json:"depositReference"`
	} `json:"fxDepositData"`
}

func (r *bookResponse) toDeal() (*fxDomain.Deal, error) {
	d := r.FXDepositData
	if d == nil {
		return nil, fmt.Errorf("response carries no deal")
	}
	return &fxDomain.Deal{
		DealID:           d.FXDealID,
		DealReference:    d.FXDealReference,
		DepositID:        d.DepositID,
		DepositReference: d.DepositReference,
	}, nil
}

type currencyListResponse struct {
	Currencies []struct {
		CurrencyCode string `json:"currencyCode"`
		CurrencyName string `json:"currencyName"`
		Symbol       string `json:"symbol"`
	} `json:"currencies"`
}

func (r *currencyListResponse) toCurrencies() []fxDomain.Currency {
	currencies := make([]fxDomain.Currency, 0, len(r.Currencies))
	for _, c := range r.Currencies {
		currencies = append(currencies, fxDomain.Currency{
			Code:   c.CurrencyCode,
			Name:   c.CurrencyName,
			Symbol: c.Symbol,
		})
	}
	return currencies
}

type createPaymentRequest struct {
	FromCustomer      string  `json:"fromCustomer"`
	ToCustomer        string  `json:"toCustomer"`
	PaymentTypeID     int     `json:"paymentTypeId"`
	Amount            float64 `json:"amount"`
	CurrencyCode      string  `json:"currencyCode"`
	ValueDate         string  `json:"valueDate"`
	ReasonForPayment  string  `json:"reasonForPayment"`
	ExternalReference string  `json:"externalReference"`
	Memo              string  `json:"memo"`
}

type createPaymentResponse struct {
	Payment *struct {
		PaymentID        flexString `json:"paymentId"`
		PaymentReference string     `json:"paymentReference"`
		Timestamp        string     `json:"timestamp"`
	} `json:"payment"`
}

func (r *createPaymentResponse) toDraft() (*paymentDomain.Draft, error) {
	p := r.Payment
	if p == nil || p.PaymentID == "" {
		return nil, fmt.Errorf("response carries no payment")
	}
	return &paymentDomain.Draft{
		PaymentID:        string(p.PaymentID),
		PaymentReference: p.PaymentReference,
		Timestamp:        p.Timestamp,
	}, nil
}

type confirmPaymentRequest struct {
	InstantPaymentID string `json:"instantPaymentId"`
	Timestamp        string `json:"timestamp"`
}

type balancesResponse struct {
	Balances []accountDomain.Balance `json:"balances"`
}

// wireBalance mirrors the server's camelCase balance record.
type wireBalance struct {
	AccountID        flexString `json:"accountId"`
	AccountNumber    string     `json:"accountNumber"`
	CurrencyCode     string     `json:"currencyCode"`
	Balance          float64    `json:"balance"`
	BalanceAvailable float64    `json:"balanceAvailable"`
	ActiveHoldsTotal float64    `json:"activeHoldsTotal"`
}

func (r *balancesResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Balances []wireBalance `json:"balances"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.Balances = make([]accountDomain.Balance, 0, len(raw.Balances))
	for _, b := range raw.Balances {
		r.Balances = append(r.Balances, accountDomain.Balance{
			AccountID:        string(b.AccountID),
			AccountNumber:    b.AccountNumber,
			CurrencyCode:     b.CurrencyCode,
			Balance:          b.Balance,
			BalanceAvailable: b.BalanceAvailable,
			ActiveHoldsTotal: b.ActiveHoldsTotal,
		})
	}
	return nil
}

// serverTimeLayouts are tried in order. Timestamps without a zone are UTC.
var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func parseServerTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range serverTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}
