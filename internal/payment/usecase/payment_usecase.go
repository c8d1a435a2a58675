package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/jonboulle/clockwork"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	customValidation "github.com/allisson/fxwallet/internal/validation"
)

// valueDateLayout is the server's date-only format.
const valueDateLayout = "2006-01-02"

// paymentUseCase implements PaymentUseCase. Network calls run outside the mutex;
// their results are applied only if gen still matches the step that issued them.
type paymentUseCase struct {
	gateway    PaymentGateway
	currencies CurrencySource
	sessions   SessionSource
	clock      clockwork.Clock
	logger     *slog.Logger

	mu      sync.Mutex
	step    paymentDomain.Step
	gen     uint64
	errMsg  string
	allowed []string
}

// NewPaymentUseCase creates a workflow in the Form step.
func NewPaymentUseCase(
	gateway PaymentGateway,
	currencies CurrencySource,
	sessions SessionSource,
	clock clockwork.Clock,
	logger *slog.Logger,
) PaymentUseCase {
	return &paymentUseCase{
		gateway:    gateway,
		currencies: currencies,
		sessions:   sessions,
		clock:      clock,
		logger:     logger,
		step:       paymentDomain.FormStep{},
	}
}

func (p *paymentUseCase) LoadBalances(ctx context.Context) ([]string, error) {
	currencies, err := p.currencies.SpendableCurrencies(ctx)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.allowed = currencies
	return slices.Clone(currencies), nil
}

func (p *paymentUseCase) Review(input paymentDomain.PaymentInput) error {
	input = normalizeInput(input)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.step.(paymentDomain.FormStep); !ok {
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "only the form can be reviewed")
	}
	if err := p.validateLocked(input); err != nil {
		return err
	}
	p.transitionLocked(paymentDomain.ReviewStep{Input: input})
	return nil
}

func (p *paymentUseCase) Back() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.step.(paymentDomain.ReviewStep); !ok {
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "back is only valid from review")
	}
	p.transitionLocked(paymentDomain.FormStep{})
	p.errMsg = ""
	return nil
}

func (p *paymentUseCase) CreateDraft(ctx context.Context, input paymentDomain.PaymentInput) error {
	input = normalizeInput(input)

	p.mu.Lock()
	switch p.step.(type) {
	case paymentDomain.FormStep, paymentDomain.ReviewStep:
	default:
		p.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "a draft can only be created from the form or review")
	}
	if err := p.validateLocked(input); err != nil {
		p.mu.Unlock()
		return err
	}
	session := p.sessions.Current()
	if !session.IsAuthenticated() {
		p.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrUnauthorized, "no active session")
	}
	p.errMsg = ""
	gen := p.transitionLocked(paymentDomain.CreatingStep{Input: input})
	p.mu.Unlock()

	request := paymentDomain.PaymentRequest{
		FromCustomer:      session.User.UserName,
		ToCustomer:        input.ToCustomer,
		Amount:            input.Amount,
		CurrencyCode:      input.CurrencyCode,
		ValueDate:         p.clock.Now().UTC().Format(valueDateLayout),
		ReasonForPayment:  paymentDomain.DefaultReasonForPayment,
		ExternalReference: uuid.Must(uuid.NewV7()).String(),
		Memo:              input.Memo,
	}
	draft, err := p.gateway.CreatePayment(ctx, request)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		if err == nil {
			p.logger.Warn("discarding payment draft created after the workflow moved on",
				slog.String("payment_reference", draft.PaymentReference),
			)
		}
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "draft response arrived after the workflow moved on")
	}
	if err != nil {
		p.transitionLocked(paymentDomain.FormStep{})
		p.errMsg = userMessage(err, paymentDomain.MsgCreateUnavailable)
		return err
	}

	p.transitionLocked(paymentDomain.ConfirmStep{Input: input, Draft: *draft})
	p.logger.Info("payment draft created",
		slog.String("payment_id", draft.PaymentID),
		slog.String("payment_reference", draft.PaymentReference),
		slog.String("external_reference", request.ExternalReference),
	)
	return nil
}

func (p *paymentUseCase) Confirm(ctx context.Context) error {
	p.mu.Lock()
	var current paymentDomain.ConfirmStep
	switch s := p.step.(type) {
	case paymentDomain.ConfirmStep:
		current = s
	case paymentDomain.SuccessStep:
		p.mu.Unlock()
		return paymentDomain.ErrDraftConsumed
	default:
		p.mu.Unlock()
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "only a pending draft can be confirmed")
	}
	p.errMsg = ""
	gen := p.transitionLocked(paymentDomain.ConfirmingStep{Input: current.Input, Draft: current.Draft})
	p.mu.Unlock()

	err := p.gateway.ConfirmPayment(ctx, current.Draft)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.gen != gen {
		p.logger.Warn("confirm response arrived after the workflow moved on",
			slog.String("payment_reference", current.Draft.PaymentReference),
			slog.Bool("posted", err == nil),
		)
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "confirm response arrived after the workflow moved on")
	}
	if err != nil {
		p.transitionLocked(current)
		p.errMsg = userMessage(err, paymentDomain.MsgConfirmUnavailable)
		return err
	}

	p.transitionLocked(paymentDomain.SuccessStep{Input: current.Input, Draft: current.Draft})
	p.logger.Info("payment confirmed", slog.String("payment_reference", current.Draft.PaymentReference))
	return nil
}

func (p *paymentUseCase) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if paymentDomain.IsProcessing(p.step) {
		return apperrors.Wrap(apperrors.ErrInvalidTransition, "the workflow cannot be reset while a call is pending")
	}
	p.transitionLocked(paymentDomain.FormStep{})
	p.errMsg = ""
	return nil
}

func (p *paymentUseCase) Abandon() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.transitionLocked(paymentDomain.FormStep{})
	p.errMsg = ""
}

func (p *paymentUseCase) State() PaymentState {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PaymentState{
		Step:       p.step,
		Error:      p.errMsg,
		Actions:    paymentDomain.ActionsFor(p.step),
		Currencies: slices.Clone(p.allowed),
		Processing: paymentDomain.IsProcessing(p.step),
	}
}

// transitionLocked moves to step and returns the new generation. Must hold p.mu.
func (p *paymentUseCase) transitionLocked(step paymentDomain.Step) uint64 {
	p.step = step
	p.gen++
	return p.gen
}

// validateLocked checks input and records the message shown on the form. Must hold p.mu.
func (p *paymentUseCase) validateLocked(input paymentDomain.PaymentInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.ToCustomer, validation.Required, customValidation.NotBlank),
		validation.Field(&input.Amount, customValidation.PositiveAmount),
		validation.Field(&input.CurrencyCode, validation.Required, customValidation.CurrencyCode),
	)
	if err != nil {
		p.errMsg = err.Error()
		return customValidation.WrapValidationError(err)
	}
	if err := validation.Validate(input.CurrencyCode, customValidation.OneOfCurrencies(p.allowed)); err != nil {
		p.errMsg = "currency_code: " + err.Error() + "."
		return apperrors.Wrap(paymentDomain.ErrCurrencyNotAllowed, input.CurrencyCode)
	}
	p.errMsg = ""
	return nil
}

func normalizeInput(input paymentDomain.PaymentInput) paymentDomain.PaymentInput {
	input.ToCustomer = strings.TrimSpace(input.ToCustomer)
	input.CurrencyCode = strings.ToUpper(strings.TrimSpace(input.CurrencyCode))
	input.Memo = strings.TrimSpace(input.Memo)
	return input
}

// userMessage is the text shown for a failed step: a problem verbatim, anything else
// as the generic fallback.
func userMessage(err error, fallback string) string {
	if msg, ok := apperrors.ProblemMessage(err); ok {
		return msg
	}
	return fallback
}
