package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

func TestMapPaymentStateToResponse(t *testing.T) {
	input := paymentDomain.PaymentInput{ToCustomer: "bob", Amount: 25, CurrencyCode: "USD"}
	draft := paymentDomain.Draft{PaymentID: "p-1", PaymentReference: "PR-1", Timestamp: "AAAAAAAAB9E="}

	t.Run("Form", func(t *testing.T) {
		response := MapPaymentStateToResponse(paymentUseCase.PaymentState{
			Step:    paymentDomain.FormStep{},
			Error:   "Recipient account not found",
			Actions: paymentDomain.ActionsFor(paymentDomain.FormStep{}),
		})

		assert.Equal(t, "form", response.Step)
		assert.Equal(t, "Recipient account not found", response.Error)
		assert.Equal(t, []string{}, response.Currencies)
		assert.Nil(t, response.Input)
		assert.Nil(t, response.Draft)
	})

	t.Run("Confirm", func(t *testing.T) {
		response := MapPaymentStateToResponse(paymentUseCase.PaymentState{
			Step:       paymentDomain.ConfirmStep{Input: input, Draft: draft},
			Currencies: []string{"USD"},
		})

		require.NotNil(t, response.Draft)
		assert.Equal(t, "PR-1", response.Draft.PaymentReference)
		assert.Equal(t, "bob", response.Input.ToCustomer)

		raw, err := json.Marshal(response)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), draft.Timestamp)
	})

	t.Run("Creating", func(t *testing.T) {
		response := MapPaymentStateToResponse(paymentUseCase.PaymentState{
			Step:       paymentDomain.CreatingStep{Input: input},
			Processing: true,
		})

		assert.True(t, response.Processing)
		assert.NotNil(t, response.Input)
		assert.Nil(t, response.Draft)
	})
}
