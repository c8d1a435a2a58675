package usecase

import (
	"context"
	"time"

	"github.com/allisson/fxwallet/internal/metrics"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

// paymentUseCaseWithMetrics decorates PaymentUseCase with metrics instrumentation.
type paymentUseCaseWithMetrics struct {
	next    PaymentUseCase
	metrics metrics.BusinessMetrics
}

// NewPaymentUseCaseWithMetrics wraps a PaymentUseCase with metrics recording.
func NewPaymentUseCaseWithMetrics(useCase PaymentUseCase, m metrics.BusinessMetrics) PaymentUseCase {
	return &paymentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (p *paymentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, p.metrics, "payment", operation, start, err)
}

// LoadBalances records metrics for balance loads.
func (p *paymentUseCaseWithMetrics) LoadBalances(ctx context.Context) ([]string, error) {
	start := time.Now()
	currencies, err := p.next.LoadBalances(ctx)
	p.record(ctx, "load_balances", start, err)
	return currencies, err
}

func (p *paymentUseCaseWithMetrics) Review(input paymentDomain.PaymentInput) error {
	return p.next.Review(input)
}

func (p *paymentUseCaseWithMetrics) Back() error {
	return p.next.Back()
}

// CreateDraft records metrics for draft creation.
func (p *paymentUseCaseWithMetrics) CreateDraft(ctx context.Context, input paymentDomain.PaymentInput) error {
	start := time.Now()
	err := p.next.CreateDraft(ctx, input)
	p.record(ctx, "create_draft", start, err)
	return err
}

// Confirm records metrics for confirmations.
func (p *paymentUseCaseWithMetrics) Confirm(ctx context.Context) error {
	start := time.Now()
	err := p.next.Confirm(ctx)
	p.record(ctx, "confirm", start, err)
	return err
}

func (p *paymentUseCaseWithMetrics) Reset() error {
	return p.next.Reset()
}

func (p *paymentUseCaseWithMetrics) Abandon() {
	p.next.Abandon()
}

func (p *paymentUseCaseWithMetrics) State() PaymentState {
	return p.next.State()
}
