package usecase

import (
	"context"
	"time"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	"github.com/allisson/fxwallet/internal/metrics"
)

// dealUseCaseWithMetrics decorates DealUseCase with metrics instrumentation.
type dealUseCaseWithMetrics struct {
	next    DealUseCase
	metrics metrics.BusinessMetrics
}

// NewDealUseCaseWithMetrics wraps a DealUseCase with metrics recording.
func NewDealUseCaseWithMetrics(useCase DealUseCase, m metrics.BusinessMetrics) DealUseCase {
	return &dealUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (d *dealUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, d.metrics, "fx", operation, start, err)
}

// RequestQuote records metrics for quote requests.
func (d *dealUseCaseWithMetrics) RequestQuote(ctx context.Context, request fxDomain.QuoteRequest) error {
	start := time.Now()
	err := d.next.RequestQuote(ctx, request)
	d.record(ctx, "request_quote", start, err)
	return err
}

// BookDeal records metrics for booking operations.
func (d *dealUseCaseWithMetrics) BookDeal(ctx context.Context) error {
	start := time.Now()
	err := d.next.BookDeal(ctx)
	d.record(ctx, "book_deal", start, err)
	return err
}

func (d *dealUseCaseWithMetrics) Cancel() error {
	return d.next.Cancel()
}

func (d *dealUseCaseWithMetrics) Reset() error {
	return d.next.Reset()
}

func (d *dealUseCaseWithMetrics) Abandon() {
	d.next.Abandon()
}

func (d *dealUseCaseWithMetrics) State() DealState {
	return d.next.State()
}

// Currencies records metrics for currency list loads.
func (d *dealUseCaseWithMetrics) Currencies(ctx context.Context) (*CurrencyLists, error) {
	start := time.Now()
	lists, err := d.next.Currencies(ctx)
	d.record(ctx, "currencies", start, err)
	return lists, err
}

func (d *dealUseCaseWithMetrics) Close() {
	d.next.Close()
}
