package dto

import (
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

// PaymentStateResponse is the payment workflow state as the client renders it.
type PaymentStateResponse struct {
	Step       string          `json:"step"`
	Processing bool            `json:"processing"`
	Error      string          `json:"error,omitempty"`
	Actions    []string        `json:"actions"`
	Currencies []string        `json:"currencies"`
	Input      *PaymentRequest `json:"input,omitempty"`
	Draft      *DraftResponse  `json:"draft,omitempty"`
}

// DraftResponse identifies a server-side payment. The concurrency token stays internal.
type DraftResponse struct {
	PaymentID        string `json:"payment_id"`
	PaymentReference string `json:"payment_reference"`
}

// MapPaymentStateToResponse converts a workflow state to its API representation.
func MapPaymentStateToResponse(state paymentUseCase.PaymentState) PaymentStateResponse {
	response := PaymentStateResponse{
		Step:       state.Step.Name(),
		Processing: state.Processing,
		Error:      state.Error,
		Actions:    state.Actions,
		Currencies: state.Currencies,
	}
	if response.Currencies == nil {
		response.Currencies = []string{}
	}

	var (
		input paymentDomain.PaymentInput
		draft *paymentDomain.Draft
	)
	switch s := state.Step.(type) {
	case paymentDomain.FormStep:
		return response
	case paymentDomain.ReviewStep:
		input = s.Input
	case paymentDomain.CreatingStep:
		input = s.Input
	case paymentDomain.ConfirmStep:
		input, draft = s.Input, &s.Draft
	case paymentDomain.ConfirmingStep:
		input, draft = s.Input, &s.Draft
	case paymentDomain.SuccessStep:
		input, draft = s.Input, &s.Draft
	}

	response.Input = &PaymentRequest{
		ToCustomer:   input.ToCustomer,
		Amount:       input.Amount,
		CurrencyCode: input.CurrencyCode,
		Memo:         input.Memo,
	}
	if draft != nil {
		response.Draft = &DraftResponse{
			PaymentID:        draft.PaymentID,
			PaymentReference: draft.PaymentReference,
		}
	}
	return response
}
