package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	apperrors "github.com/allisson/fxwallet/internal/errors"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	"github.com/allisson/fxwallet/internal/metrics"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

const (
	quotePath          = "/api/v1/FXDealQuote"
	buyCurrenciesPath  = "/api/v1/FXCurrencyList/Buy"
	sellCurrenciesPath = "/api/v1/FXCurrencyList/Sell"
	paymentPath        = "/api/v1/InstantPayment"
	paymentPostPath    = "/api/v1/InstantPayment/Post"
	balancesPath       = "/api/v1/CustomerAccountBalance"
	statementPath      = "/api/v1/CustomerAccountStatement"
	paymentSearchPath  = "/api/v1/InstantPayment/Search"
	dealSearchPath     = "/api/v1/FXDeal/Search"
)

// TokenSource supplies bearer tokens for authenticated calls.
type TokenSource interface {
	// AccessToken returns a token that is not expired, refreshing first if needed.
	AccessToken(ctx context.Context) (string, error)

	// Refresh forces a coalesced refresh. False means the session was ended, or
	// that ctx was done before the refresh completed.
	Refresh(ctx context.Context) bool
}

// Client performs authenticated calls. A 401 triggers one refresh through the
// TokenSource and one replay of the request.
type Client struct {
	transport *transport
	tokens    TokenSource
}

// NewClient creates a Client. A nil httpClient uses one with cfg.Timeout.
func NewClient(
	cfg Config,
	httpClient *http.Client,
	tokens TokenSource,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *Client {
	return &Client{
		transport: newTransport(cfg, httpClient, logger, businessMetrics),
		tokens:    tokens,
	}
}

// RequestQuote asks the server to price a spot deal.
func (c *Client) RequestQuote(ctx context.Context, request fxDomain.QuoteRequest) (quote *fxDomain.Quote, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "request_fx_quote", start, err) }(time.Now())

	var resp quoteResponse
	err = c.call(ctx, http.MethodPost, quotePath, quoteRequest{
		BuyCurrencyCode:         request.BuyCurrencyCode,
		SellCurrencyCode:        request.SellCurrencyCode,
		Amount:                  request.Amount,
		AmountCurrencyCode:      request.AmountCurrencyCode,
		DealType:                fxDomain.DealTypeSpot,
		WindowOpenDate:          "",
		FinalValueDate:          "",
		IsForCurrencyCalculator: false,
	}, &resp)
	if err != nil {
		return nil, err
	}

	quote, err = resp.toQuote()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	return quote, nil
}

// BookDeal books quoteID with an instant deposit.
func (c *Client) BookDeal(ctx context.Context, quoteID string) (deal *fxDomain.Deal, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "book_fx_deal", start, err) }(time.Now())

	var resp bookResponse
	path := quotePath + "/" + url.PathEscape(quoteID) + "/BookAndInstantDeposit"
	if err = c.call(ctx, http.MethodPatch, path, nil, &resp); err != nil {
		return nil, err
	}

	deal, err = resp.toDeal()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	return deal, nil
}

// BuyCurrencies lists the currencies that can be bought.
func (c *Client) BuyCurrencies(ctx context.Context) (currencies []fxDomain.Currency, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "list_buy_currencies", start, err) }(time.Now())

	var resp currencyListResponse
	if err = c.call(ctx, http.MethodGet, buyCurrenciesPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toCurrencies(), nil
}

// SellCurrencies lists the currencies that can be sold.
func (c *Client) SellCurrencies(ctx context.Context) (currencies []fxDomain.Currency, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "list_sell_currencies", start, err) }(time.Now())

	var resp currencyListResponse
	if err = c.call(ctx, http.MethodGet, sellCurrenciesPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.toCurrencies(), nil
}

// CreatePayment creates an instant payment draft.
func (c *Client) CreatePayment(ctx context.Context, request paymentDomain.PaymentRequest) (draft *paymentDomain.Draft, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "create_payment", start, err) }(time.Now())

	var resp createPaymentResponse
	err = c.call(ctx, http.MethodPost, paymentPath, createPaymentRequest{
		FromCustomer:      request.FromCustomer,
		ToCustomer:        request.ToCustomer,
		PaymentTypeID:     paymentDomain.PaymentTypeInstant,
		Amount:            request.Amount,
		CurrencyCode:      request.CurrencyCode,
		ValueDate:         request.ValueDate,
		ReasonForPayment:  request.ReasonForPayment,
		ExternalReference: request.ExternalReference,
		Memo:              request.Memo,
	}, &resp)
	if err != nil {
		return nil, err
	}

	draft, err = resp.toDraft()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	return draft, nil
}

// ConfirmPayment posts a draft. Timestamp must be the one the draft was created with.
func (c *Client) ConfirmPayment(ctx context.Context, draft paymentDomain.Draft) (err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "confirm_payment", start, err) }(time.Now())

	return c.call(ctx, http.MethodPatch, paymentPostPath, confirmPaymentRequest{
		InstantPaymentID: draft.PaymentID,
		Timestamp:        draft.Timestamp,
	}, nil)
}

// Balances lists the account balances of an organization.
func (c *Client) Balances(ctx context.Context, organizationID string) (balances []accountDomain.Balance, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "list_balances", start, err) }(time.Now())

	var resp balancesResponse
	if err = c.call(ctx, http.MethodGet, balancesPath+"/"+url.PathEscape(organizationID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Balances, nil
}

// Statement fetches the entries of one account between the query dates.
func (c *Client) Statement(ctx context.Context, query accountDomain.StatementQuery) (statement *accountDomain.Statement, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "get_statement", start, err) }(time.Now())

	params := url.Values{}
	params.Set("accountId", query.AccountID)
	params.Set("strStartDate", query.StartDate.Format(accountDomain.DateLayout))
	params.Set("strEndDate", query.EndDate.Format(accountDomain.DateLayout))

	var resp statementResponse
	if err = c.call(ctx, http.MethodGet, statementPath+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toStatement(query), nil
}

// SearchPayments lists instant payments by value date, newest first.
func (c *Client) SearchPayments(ctx context.Context, search paymentDomain.PaymentSearch) (page *paymentDomain.PaymentPage, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "search_payments", start, err) }(time.Now())

	params := url.Values{}
	params.Set("PageIndex", strconv.Itoa(search.PageIndex))
	params.Set("PageSize", strconv.Itoa(search.PageSize))
	params.Set("ValueDateMin", search.ValueDateMin.Format(accountDomain.DateLayout))
	params.Set("ValueDateMax", search.ValueDateMax.Format(accountDomain.DateLayout))
	params.Set("SortBy", "CreatedTime")
	params.Set("SortDirection", "Descending")

	var resp paymentSearchResponse
	if err = c.call(ctx, http.MethodGet, paymentSearchPath+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(search), nil
}

// SearchFXDeals lists booked FX deals, most recently booked first.
func (c *Client) SearchFXDeals(ctx context.Context, search fxDomain.DealSearch) (page *fxDomain.DealPage, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "search_fx_deals", start, err) }(time.Now())

	params := url.Values{}
	params.Set("PageIndex", strconv.Itoa(search.PageIndex))
	params.Set("PageSize", strconv.Itoa(search.PageSize))
	params.Set("SortBy", "BookedTime")
	params.Set("SortDirection", "Descending")

	var resp dealSearchResponse
	if err = c.call(ctx, http.MethodGet, dealSearchPath+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toPage(search), nil
}

func (c *Client) call(ctx context.Context, method, path string, request, out any) error {
	payload, err := encode(request)
	if err != nil {
		return err
	}

	r, err := c.sendAuthorized(ctx, method, path, payload)
	if err != nil {
		return err
	}

	if r.status == http.StatusUnauthorized {
		if !c.tokens.Refresh(ctx) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return apperrors.Wrap(apperrors.ErrUnavailable, ctxErr.Error())
			}
			return sessionDomain.ErrSessionEnded
		}
		if r, err = c.sendAuthorized(ctx, method, path, payload); err != nil {
			return err
		}
	}

	return decode(r, out)
}

func (c *Client) sendAuthorized(ctx context.Context, method, path string, payload []byte) (*reply, error) {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	return c.transport.send(ctx, method, path, token, payload)
}
