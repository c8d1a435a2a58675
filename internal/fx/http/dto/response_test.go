package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/timer"
)

func TestMapDealStateToResponse(t *testing.T) {
	quote := fxDomain.Quote{
		QuoteID:          "q-1",
		Rate:             "0.9210",
		BuyCurrencyCode:  "USD",
		SellCurrencyCode: "EUR",
		ExpirationTime:   time.Date(2026, 10, 19, 9, 0, 30, 0, time.UTC),
	}

	t.Run("Quote", func(t *testing.T) {
		response := MapDealStateToResponse(fxUseCase.DealState{
			Step:             fxDomain.QuoteStep{Quote: quote},
			RemainingSeconds: 75,
			Severity:         timer.SeverityNormal,
			Actions:          fxDomain.ActionsFor(fxDomain.QuoteStep{}),
		})

		assert.Equal(t, fxDomain.StepQuote, response.Step)
		assert.Equal(t, "1:15", response.Remaining)
		assert.Equal(t, "normal", response.Severity)
		require.NotNil(t, response.Quote)
		assert.Equal(t, "q-1", response.Quote.QuoteID)
		assert.Nil(t, response.Deal)
	})

	t.Run("Success", func(t *testing.T) {
		response := MapDealStateToResponse(fxUseCase.DealState{
			Step: fxDomain.SuccessStep{
				Quote: quote,
				Deal:  fxDomain.Deal{DealReference: "DR-1", DepositReference: "DEP-1"},
			},
		})

		require.NotNil(t, response.Deal)
		assert.Equal(t, "DR-1", response.Deal.DealReference)
		assert.Equal(t, "DEP-1", response.Deal.DepositReference)
		assert.NotNil(t, response.Quote)
	})

	t.Run("Quoting", func(t *testing.T) {
		response := MapDealStateToResponse(fxUseCase.DealState{
			Step: fxDomain.QuotingStep{Request: fxDomain.QuoteRequest{BuyCurrencyCode: "USD", Amount: 100}},
		})

		require.NotNil(t, response.Request)
		assert.Equal(t, 100.0, response.Request.Amount)
		assert.Nil(t, response.Quote)
	})
}
