package usecase

import (
	"context"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
)

type historyUseCase struct {
	gateway HistoryGateway
}

// NewHistoryUseCase creates a HistoryUseCase.
func NewHistoryUseCase(gateway HistoryGateway) HistoryUseCase {
	return &historyUseCase{gateway: gateway}
}

func (h *historyUseCase) Search(ctx context.Context, search fxDomain.DealSearch) (*fxDomain.DealPage, error) {
	if search.PageSize == 0 {
		search.PageSize = fxDomain.DefaultPageSize
	}
	if err := search.Validate(); err != nil {
		return nil, err
	}
	return h.gateway.SearchFXDeals(ctx, search)
}
