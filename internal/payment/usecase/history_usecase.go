package usecase

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

type historyUseCase struct {
	gateway HistoryGateway
	clock   clockwork.Clock
}

// NewHistoryUseCase creates a HistoryUseCase.
func NewHistoryUseCase(gateway HistoryGateway, clock clockwork.Clock) HistoryUseCase {
	return &historyUseCase{gateway: gateway, clock: clock}
}

func (h *historyUseCase) Search(
	ctx context.Context,
	search paymentDomain.PaymentSearch,
) (*paymentDomain.PaymentPage, error) {
	if search.PageSize == 0 {
		search.PageSize = paymentDomain.DefaultPageSize
	}
	if search.ValueDateMax.IsZero() {
		y, m, d := h.clock.Now().UTC().Date()
		search.ValueDateMax = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	if search.ValueDateMin.IsZero() {
		search.ValueDateMin = search.ValueDateMax.AddDate(0, 0, -paymentDomain.DefaultHistoryDays)
	}
	if err := search.Validate(); err != nil {
		return nil, err
	}
	return h.gateway.SearchPayments(ctx, search)
}
