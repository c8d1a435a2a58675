package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/jellydator/validation"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	"github.com/allisson/fxwallet/internal/timer"
	customValidation "github.com/allisson/fxwallet/internal/validation"
)

// dealUseCase implements DealUseCase. Network calls run outside the mutex; their
// results are applied only if gen still matches the step that issued them.
type dealUseCase struct {
	gateway      QuoteGateway
	clock        clockwork.Clock
	tickInterval time.Duration
	logger       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	step      fxDomain.Step
	gen       uint64
	errMsg    string
	countdown *timer.Task
	retired   []*timer.Task
}

// NewDealUseCase creates a workflow in the Form step.
func NewDealUseCase(
	gateway QuoteGateway,
	clock clockwork.Clock,
	tickInterval time.Duration,
	logger *slog.Logger,
) DealUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &dealUseCase{
		gateway:      gateway,
		clock:        clock,
		tickInterval: tickInterval,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		step:         fxDomain.FormStep{},
	}
}

func (d *dealUseCase) RequestQuote(ctx context.Context, request fxDomain.QuoteRequest) error {
	request = normalizeRequest(request)

	d.mu.Lock()
	if _, ok := d.step.(fxDomain.FormStep); !ok {
		d.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "a quote can only be requested from the form")
	}
	d.errMsg = ""
	if err := validateRequest(request); err != nil {
		d.errMsg = err.Error()
		d.mu.Unlock()
		return customValidation.WrapValidationError(err)
	}
	if request.BuyCurrencyCode == request.SellCurrencyCode {
		d.errMsg = "buy and sell currencies must differ"
		d.mu.Unlock()
		return fxDomain.ErrSameCurrency
	}
	gen := d.transitionLocked(fxDomain.QuotingStep{Request: request})
	d.mu.Unlock()

	quote, err := d.gateway.RequestQuote(ctx, request)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.gen != gen {
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "quote response arrived after the workflow moved on")
	}
	if err != nil {
		d.transitionLocked(fxDomain.FormStep{})
		d.errMsg = userMessage(err, fxDomain.MsgQuoteUnavailable)
		return err
	}

	d.transitionLocked(fxDomain.QuoteStep{Quote: *quote})
	if d.expiredLocked(*quote) {
		d.expireLocked(*quote)
		return fxDomain.ErrQuoteExpired
	}
	d.startCountdownLocked()

	d.logger.Info("fx quote received",
		slog.String("quote_id", quote.QuoteID),
		slog.Time("expires_at", quote.ExpirationTime),
	)
	return nil
}

func (d *dealUseCase) BookDeal(ctx context.Context) error {
	d.mu.Lock()
	d.applyExpiryLocked()
	var quote fxDomain.Quote
	switch s := d.step.(type) {
	case fxDomain.QuoteStep:
		quote = s.Quote
	case fxDomain.ExpiredStep:
		d.errMsg = fxDomain.MsgQuoteExpired
		d.mu.Unlock()
		return fxDomain.ErrQuoteExpired
	default:
		d.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "only a live quote can be booked")
	}
	d.errMsg = ""
	gen := d.transitionLocked(fxDomain.BookingStep{Quote: quote})
	d.mu.Unlock()

	deal, err := d.gateway.BookDeal(ctx, quote.QuoteID)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.applyExpiryLocked()
	if d.gen != gen {
		d.logger.Warn("discarding booking response for a quote that is no longer live",
			slog.String("quote_id", quote.QuoteID),
			slog.String("step", d.step.Name()),
			slog.Bool("booked", err == nil),
		)
		if _, expired := d.step.(fxDomain.ExpiredStep); expired {
			return fxDomain.ErrQuoteExpired
		}
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "booking response arrived after the workflow moved on")
	}
	if err != nil {
		d.transitionLocked(fxDomain.QuoteStep{Quote: quote})
		d.errMsg = userMessage(err, fxDomain.MsgBookingUnavailable)
		return err
	}

	d.stopCountdownLocked()
	d.transitionLocked(fxDomain.SuccessStep{Quote: quote, Deal: *deal})

	d.logger.Info("fx deal booked",
		slog.String("quote_id", quote.QuoteID),
		slog.String("deal_reference", deal.DealReference),
		slog.String("deposit_reference", deal.DepositReference),
	)
	return nil
}

func (d *dealUseCase) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.applyExpiryLocked()
	if _, ok := d.step.(fxDomain.QuoteStep); !ok {
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "only a live quote can be cancelled")
	}
	d.stopCountdownLocked()
	d.transitionLocked(fxDomain.FormStep{})
	d.errMsg = ""
	return nil
}

func (d *dealUseCase) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.applyExpiryLocked()
	switch d.step.(type) {
	case fxDomain.FormStep, fxDomain.SuccessStep, fxDomain.ExpiredStep:
	default:
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "the workflow cannot be reset while a quote is live or a call is pending")
	}
	d.stopCountdownLocked()
	d.transitionLocked(fxDomain.FormStep{})
	d.errMsg = ""
	return nil
}

func (d *dealUseCase) Abandon() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopCountdownLocked()
	d.transitionLocked(fxDomain.FormStep{})
	d.errMsg = ""
}

// State applies the expiry rule on read, so a late or missed tick cannot leave a
// stale Quote visible.
func (d *dealUseCase) State() DealState {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.applyExpiryLocked()

	state := DealState{
		Step:     d.step,
		Error:    d.errMsg,
		Actions:  fxDomain.ActionsFor(d.step),
		Severity: timer.SeverityNormal,
	}
	switch s := d.step.(type) {
	case fxDomain.QuoteStep:
		state.RemainingSeconds = timer.NewCountdown(s.Quote.ExpirationTime).RemainingSeconds(d.clock.Now())
		state.Severity = timer.SeverityFor(state.RemainingSeconds)
	case fxDomain.BookingStep:
		state.RemainingSeconds = timer.NewCountdown(s.Quote.ExpirationTime).RemainingSeconds(d.clock.Now())
		state.Severity = timer.SeverityFor(state.RemainingSeconds)
	case fxDomain.ExpiredStep:
		state.Severity = timer.SeverityFor(0)
	}
	return state
}

func (d *dealUseCase) Currencies(ctx context.Context) (*CurrencyLists, error) {
	lists := &CurrencyLists{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		buy, err := d.gateway.BuyCurrencies(gctx)
		lists.Buy = buy
		return err
	})
	g.Go(func() error {
		sell, err := d.gateway.SellCurrencies(gctx)
		lists.Sell = sell
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

func (d *dealUseCase) Close() {
	d.mu.Lock()
	d.stopCountdownLocked()
	retired := d.retired
	d.retired = nil
	d.mu.Unlock()

	d.cancel()
	for _, task := range retired {
		task.Wait()
	}
}

// transitionLocked moves to step and returns the new generation. Must hold d.mu.
func (d *dealUseCase) transitionLocked(step fxDomain.Step) uint64 {
	d.step = step
	d.gen++
	return d.gen
}

// tick runs once per interval while a quote is live.
func (d *dealUseCase) tick(context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applyExpiryLocked()
}

// applyExpiryLocked moves Quote or Booking to Expired once the countdown reaches
// zero. Must hold d.mu.
func (d *dealUseCase) applyExpiryLocked() {
	quote, live := liveQuote(d.step)
	if !live || !d.expiredLocked(quote) {
		return
	}
	d.expireLocked(quote)
}

func (d *dealUseCase) expiredLocked(quote fxDomain.Quote) bool {
	return timer.NewCountdown(quote.ExpirationTime).Expired(d.clock.Now())
}

func (d *dealUseCase) expireLocked(quote fxDomain.Quote) {
	d.stopCountdownLocked()
	d.transitionLocked(fxDomain.ExpiredStep{Quote: quote})
	d.logger.Info("fx quote expired", slog.String("quote_id", quote.QuoteID))
}

func (d *dealUseCase) startCountdownLocked() {
	d.stopCountdownLocked()
	d.countdown = timer.Every(d.ctx, d.clock, d.tickInterval, d.tick)
}

// stopCountdownLocked cancels without waiting, since it can run on the countdown
// goroutine. Close waits for every retired task.
func (d *dealUseCase) stopCountdownLocked() {
	if d.countdown == nil {
		return
	}
	d.countdown.Stop()

	alive := d.retired[:0]
	for _, task := range d.retired {
		select {
		case <-task.Done():
		default:
			alive = append(alive, task)
		}
	}
	d.retired = append(alive, d.countdown)
	d.countdown = nil
}

func liveQuote(step fxDomain.Step) (fxDomain.Quote, bool) {
	switch s := step.(type) {
	case fxDomain.QuoteStep:
		return s.Quote, true
	case fxDomain.BookingStep:
		return s.Quote, true
	default:
		return fxDomain.Quote{}, false
	}
}

func normalizeRequest(request fxDomain.QuoteRequest) fxDomain.QuoteRequest {
	request.BuyCurrencyCode = strings.ToUpper(strings.TrimSpace(request.BuyCurrencyCode))
	request.SellCurrencyCode = strings.ToUpper(strings.TrimSpace(request.SellCurrencyCode))
	request.AmountCurrencyCode = strings.ToUpper(strings.TrimSpace(request.AmountCurrencyCode))
	return request
}

func validateRequest(request fxDomain.QuoteRequest) error {
	return validation.ValidateStruct(&request,
		validation.Field(&request.BuyCurrencyCode, validation.Required, customValidation.CurrencyCode),
		validation.Field(&request.SellCurrencyCode, validation.Required, customValidation.CurrencyCode),
		validation.Field(&request.Amount, customValidation.PositiveAmount),
		validation.Field(&request.AmountCurrencyCode,
			validation.Required,
			validation.In(request.BuyCurrencyCode, request.SellCurrencyCode).Error("must be the buy or sell currency"),
		),
	)
}

// userMessage is the text shown for a failed step: a problem verbatim, anything else
// as the generic fallback.
func userMessage(err error, fallback string) string {
	if msg, ok := apperrors.ProblemMessage(err); ok {
		return msg
	}
	return fallback
}
