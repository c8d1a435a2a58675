package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	"github.com/allisson/fxwallet/internal/timer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

// mockQuoteGateway is a mock implementation of QuoteGateway for testing.
type mockQuoteGateway struct {
	mock.Mock
}

func (m *mockQuoteGateway) RequestQuote(
	ctx context.Context,
	request fxDomain.QuoteRequest,
) (*fxDomain.Quote, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fxDomain.Quote), args.Error(1)
}

func (m *mockQuoteGateway) BookDeal(ctx context.Context, quoteID string) (*fxDomain.Deal, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fxDomain.Deal), args.Error(1)
}

func (m *mockQuoteGateway) BuyCurrencies(ctx context.Context) ([]fxDomain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fxDomain.Currency), args.Error(1)
}

func (m *mockQuoteGateway) SellCurrencies(ctx context.Context) ([]fxDomain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fxDomain.Currency), args.Error(1)
}

type fixture struct {
	gateway *mockQuoteGateway
	clock   *clockwork.FakeClock
	uc      DealUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testNow)
	gateway := &mockQuoteGateway{}
	uc := NewDealUseCase(gateway, clock, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(uc.Close)

	return &fixture{gateway: gateway, clock: clock, uc: uc}
}

func usdEurRequest() fxDomain.QuoteRequest {
	return fxDomain.QuoteRequest{
		BuyCurrencyCode:    "USD",
		SellCurrencyCode:   "EUR",
		Amount:             100,
		AmountCurrencyCode: "USD",
	}
}

func liveQuote30s() *fxDomain.Quote {
	return &fxDomain.Quote{
		QuoteID:          "q-1",
		QuoteReference:   "QR-1",
		DealType:         fxDomain.DealTypeSpot,
		Rate:             "0.9210",
		BuyAmount:        "100.00",
		BuyCurrencyCode:  "USD",
		SellAmount:       "92.10",
		SellCurrencyCode: "EUR",
		QuoteTime:        testNow,
		ExpirationTime:   testNow.Add(30 * time.Second),
	}
}

func (f *fixture) quoted(t *testing.T) {
	t.Helper()
	f.gateway.On("RequestQuote", mock.Anything, usdEurRequest()).Return(liveQuote30s(), nil).Once()
	require.NoError(t, f.uc.RequestQuote(context.Background(), usdEurRequest()))
}

func (d *dealUseCase) activeCountdown() *timer.Task {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.countdown
}

func assertTaskDone(t *testing.T, task *timer.Task) {
	t.Helper()
	select {
	case <-task.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("countdown still running")
	}
}

func TestDealUseCase_RequestQuote(t *testing.T) {
	t.Run("Success_LiveQuoteWithCountdown", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)

		state := f.uc.State()
		assert.IsType(t, fxDomain.QuoteStep{}, state.Step)
		assert.Equal(t, 30, state.RemainingSeconds)
		assert.Equal(t, timer.SeverityWarning, state.Severity)
		assert.Equal(t, []string{fxDomain.ActionBook, fxDomain.ActionCancel}, state.Actions)
		assert.Empty(t, state.Error)
		f.gateway.AssertExpectations(t)
	})

	t.Run("Success_CodesNormalized", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("RequestQuote", mock.Anything, usdEurRequest()).Return(liveQuote30s(), nil).Once()

		err := f.uc.RequestQuote(context.Background(), fxDomain.QuoteRequest{
			BuyCurrencyCode:    " usd",
			SellCurrencyCode:   "eur ",
			Amount:             100,
			AmountCurrencyCode: "Usd",
		})

		require.NoError(t, err)
		f.gateway.AssertExpectations(t)
	})

	t.Run("Error_InvalidInputNeverReachesNetwork", func(t *testing.T) {
		tests := []struct {
			name    string
			request fxDomain.QuoteRequest
		}{
			{name: "missing buy", request: fxDomain.QuoteRequest{SellCurrencyCode: "EUR", Amount: 1, AmountCurrencyCode: "EUR"}},
			{name: "bad code", request: fxDomain.QuoteRequest{BuyCurrencyCode: "US", SellCurrencyCode: "EUR", Amount: 1, AmountCurrencyCode: "EUR"}},
			{name: "zero amount", request: fxDomain.QuoteRequest{BuyCurrencyCode: "USD", SellCurrencyCode: "EUR", AmountCurrencyCode: "EUR"}},
			{name: "infinite amount", request: fxDomain.QuoteRequest{BuyCurrencyCode: "USD", SellCurrencyCode: "EUR", Amount: math.Inf(1), AmountCurrencyCode: "EUR"}},
			{name: "amount currency unrelated", request: fxDomain.QuoteRequest{BuyCurrencyCode: "USD", SellCurrencyCode: "EUR", Amount: 1, AmountCurrencyCode: "GBP"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)

				err := f.uc.RequestQuote(context.Background(), tt.request)

				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
				state := f.uc.State()
				assert.IsType(t, fxDomain.FormStep{}, state.Step)
				assert.NotEmpty(t, state.Error)
				f.gateway.AssertNotCalled(t, "RequestQuote", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Error_SameCurrency", func(t *testing.T) {
		f := newFixture(t)
		request := usdEurRequest()
		request.SellCurrencyCode = "USD"

		err := f.uc.RequestQuote(context.Background(), request)

		assert.ErrorIs(t, err, fxDomain.ErrSameCurrency)
		assert.Equal(t, "buy and sell currencies must differ", f.uc.State().Error)
	})

	t.Run("Error_ProblemShownVerbatim", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("RequestQuote", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewProblem("Currency pair not supported")).Once()

		err := f.uc.RequestQuote(context.Background(), usdEurRequest())

		assert.ErrorIs(t, err, apperrors.ErrProblem)
		state := f.uc.State()
		assert.IsType(t, fxDomain.FormStep{}, state.Step)
		assert.Equal(t, "Currency pair not supported", state.Error)
	})

	t.Run("Error_TransportShowsGenericMessage", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("RequestQuote", mock.Anything, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrUnavailable, "dial tcp: refused")).Once()

		err := f.uc.RequestQuote(context.Background(), usdEurRequest())

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.Equal(t, fxDomain.MsgQuoteUnavailable, f.uc.State().Error)
	})

	t.Run("Error_QuoteAlreadyExpired", func(t *testing.T) {
		f := newFixture(t)
		quote := liveQuote30s()
		quote.ExpirationTime = testNow.Add(500 * time.Millisecond)
		f.gateway.On("RequestQuote", mock.Anything, mock.Anything).Return(quote, nil).Once()

		err := f.uc.RequestQuote(context.Background(), usdEurRequest())

		assert.ErrorIs(t, err, fxDomain.ErrQuoteExpired)
		assert.IsType(t, fxDomain.ExpiredStep{}, f.uc.State().Step)
	})

	t.Run("Error_NotFromForm", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)

		err := f.uc.RequestQuote(context.Background(), usdEurRequest())

		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
		assert.IsType(t, fxDomain.QuoteStep{}, f.uc.State().Step)
	})
}

func TestDealUseCase_Expiry(t *testing.T) {
	t.Run("Success_CountdownReachesZero", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)

		f.clock.Advance(20 * time.Second)
		state := f.uc.State()
		assert.Equal(t, 10, state.RemainingSeconds)
		assert.Equal(t, timer.SeverityUrgent, state.Severity)

		f.clock.Advance(11 * time.Second)
		state = f.uc.State()
		require.IsType(t, fxDomain.ExpiredStep{}, state.Step)
		assert.Equal(t, "q-1", state.Step.(fxDomain.ExpiredStep).Quote.QuoteID)
		assert.Equal(t, 0, state.RemainingSeconds)
		assert.Equal(t, []string{fxDomain.ActionReset}, state.Actions)
	})

	t.Run("Success_TickExpiresWithoutRead", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		d := f.uc.(*dealUseCase)

		f.clock.Advance(31 * time.Second)

		assert.Eventually(t, func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()
			_, expired := d.step.(fxDomain.ExpiredStep)
			return expired && d.countdown == nil
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("Error_BookAfterExpiry", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		f.clock.Advance(time.Minute)

		err := f.uc.BookDeal(context.Background())

		assert.ErrorIs(t, err, fxDomain.ErrQuoteExpired)
		assert.Equal(t, fxDomain.MsgQuoteExpired, f.uc.State().Error)
		f.gateway.AssertNotCalled(t, "BookDeal", mock.Anything, mock.Anything)
	})
}

func TestDealUseCase_BookDeal(t *testing.T) {
	deal := &fxDomain.Deal{
		DealID:           "d-1",
		DealReference:    "DR-1",
		DepositID:        "dep-1",
		DepositReference: "DEP-1",
	}

	t.Run("Success_Booked", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		f.gateway.On("BookDeal", mock.Anything, "q-1").Return(deal, nil).Once()

		require.NoError(t, f.uc.BookDeal(context.Background()))

		state := f.uc.State()
		require.IsType(t, fxDomain.SuccessStep{}, state.Step)
		assert.Equal(t, *deal, state.Step.(fxDomain.SuccessStep).Deal)
		assert.Equal(t, []string{fxDomain.ActionReset}, state.Actions)

		f.clock.Advance(time.Minute)
		assert.IsType(t, fxDomain.SuccessStep{}, f.uc.State().Step)
	})

	t.Run("Error_ProblemReturnsToQuote", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		f.gateway.On("BookDeal", mock.Anything, "q-1").
			Return(nil, apperrors.NewProblem("Insufficient funds")).Once()

		err := f.uc.BookDeal(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrProblem)
		state := f.uc.State()
		assert.IsType(t, fxDomain.QuoteStep{}, state.Step)
		assert.Equal(t, "Insufficient funds", state.Error)
		assert.Equal(t, 30, state.RemainingSeconds)
	})

	t.Run("Error_TransportShowsGenericMessage", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		f.gateway.On("BookDeal", mock.Anything, "q-1").Return(nil, apperrors.ErrUnavailable).Once()

		err := f.uc.BookDeal(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.Equal(t, fxDomain.MsgBookingUnavailable, f.uc.State().Error)
	})

	t.Run("Error_LateResponseAfterExpiryDiscarded", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)

		entered := make(chan struct{})
		release := make(chan struct{})
		f.gateway.On("BookDeal", mock.Anything, "q-1").
			Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(deal, nil).Once()

		result := make(chan error, 1)
		go func() {
			result <- f.uc.BookDeal(context.Background())
		}()

		<-entered
		state := f.uc.State()
		assert.IsType(t, fxDomain.BookingStep{}, state.Step)
		assert.Empty(t, state.Actions)

		f.clock.Advance(31 * time.Second)
		assert.IsType(t, fxDomain.ExpiredStep{}, f.uc.State().Step)

		close(release)
		assert.ErrorIs(t, <-result, fxDomain.ErrQuoteExpired)
		assert.IsType(t, fxDomain.ExpiredStep{}, f.uc.State().Step)
	})

	t.Run("Error_NotFromForm", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.BookDeal(context.Background())

		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})
}

func TestDealUseCase_CancelResetAbandon(t *testing.T) {
	t.Run("Success_CancelReturnsToForm", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		countdown := f.uc.(*dealUseCase).activeCountdown()
		require.NotNil(t, countdown)

		require.NoError(t, f.uc.Cancel())

		assertTaskDone(t, countdown)
		assert.Nil(t, f.uc.(*dealUseCase).activeCountdown())
		assert.IsType(t, fxDomain.FormStep{}, f.uc.State().Step)
		assert.ErrorIs(t, f.uc.Cancel(), apperrors.ErrInvalidTransition)
	})

	t.Run("Success_AbandonStopsCountdown", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		countdown := f.uc.(*dealUseCase).activeCountdown()
		require.NotNil(t, countdown)

		f.uc.Abandon()

		assertTaskDone(t, countdown)
		assert.Nil(t, f.uc.(*dealUseCase).activeCountdown())
		assert.IsType(t, fxDomain.FormStep{}, f.uc.State().Step)
	})

	t.Run("Success_ResetFromExpired", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)
		f.clock.Advance(time.Minute)

		require.NoError(t, f.uc.Reset())

		state := f.uc.State()
		assert.IsType(t, fxDomain.FormStep{}, state.Step)
		assert.Empty(t, state.Error)
	})

	t.Run("Error_ResetFromLiveQuote", func(t *testing.T) {
		f := newFixture(t)
		f.quoted(t)

		assert.ErrorIs(t, f.uc.Reset(), apperrors.ErrInvalidTransition)
	})

	t.Run("Success_AbandonDropsPendingQuote", func(t *testing.T) {
		f := newFixture(t)

		entered := make(chan struct{})
		release := make(chan struct{})
		f.gateway.On("RequestQuote", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(liveQuote30s(), nil).Once()

		result := make(chan error, 1)
		go func() {
			result <- f.uc.RequestQuote(context.Background(), usdEurRequest())
		}()

		<-entered
		assert.IsType(t, fxDomain.QuotingStep{}, f.uc.State().Step)
		f.uc.Abandon()
		close(release)

		assert.ErrorIs(t, <-result, apperrors.ErrInvalidTransition)
		assert.IsType(t, fxDomain.FormStep{}, f.uc.State().Step)
	})
}

func TestDealUseCase_Currencies(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		buy := []fxDomain.Currency{{Code: "USD", Name: "US Dollar", Symbol: "$"}}
		sell := []fxDomain.Currency{{Code: "EUR", Name: "Euro", Symbol: "€"}}
		f.gateway.On("BuyCurrencies", mock.Anything).Return(buy, nil).Once()
		f.gateway.On("SellCurrencies", mock.Anything).Return(sell, nil).Once()

		lists, err := f.uc.Currencies(context.Background())

		require.NoError(t, err)
		assert.Equal(t, buy, lists.Buy)
		assert.Equal(t, sell, lists.Sell)
	})

	t.Run("Error_OneListFails", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("BuyCurrencies", mock.Anything).Return([]fxDomain.Currency{}, nil).Maybe()
		f.gateway.On("SellCurrencies", mock.Anything).Return(nil, apperrors.ErrUnavailable).Once()

		lists, err := f.uc.Currencies(context.Background())

		assert.Nil(t, lists)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestDealUseCaseWithMetrics(t *testing.T) {
	f := newFixture(t)
	m := &countingMetrics{}
	uc := NewDealUseCaseWithMetrics(f.uc, m)

	f.gateway.On("RequestQuote", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewProblem("Market closed")).Once()
	f.gateway.On("RequestQuote", mock.Anything, mock.Anything).Return(liveQuote30s(), nil).Once()
	f.gateway.On("BookDeal", mock.Anything, "q-1").Return(nil, errors.New("boom")).Once()

	require.Error(t, uc.RequestQuote(context.Background(), usdEurRequest()))
	require.NoError(t, uc.RequestQuote(context.Background(), usdEurRequest()))
	require.Error(t, uc.BookDeal(context.Background()))

	assert.Equal(t, []string{
		"fx/request_quote/problem",
		"fx/request_quote/success",
		"fx/book_deal/error",
	}, m.operations)
}

type countingMetrics struct {
	operations []string
}

func (c *countingMetrics) RecordOperation(_ context.Context, domain, operation, status string) {
	c.operations = append(c.operations, domain+"/"+operation+"/"+status)
}

func (c *countingMetrics) RecordDuration(context.Context, string, string, time.Duration, string) {}
