package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	paymentMocks "github.com/allisson/fxwallet/internal/payment/http/mocks"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

var toBob = paymentDomain.PaymentInput{ToCustomer: "bob", Amount: 25, CurrencyCode: "USD", Memo: "lunch"}

var bobDraft = paymentDomain.Draft{PaymentID: "p-1", PaymentReference: "PR-1", Timestamp: "AAAAAAAAB9E="}

func TestRunInstantPayment(t *testing.T) {
	ctx := context.Background()
	confirmState := paymentUseCase.PaymentState{Step: paymentDomain.ConfirmStep{Input: toBob, Draft: bobDraft}}
	successState := paymentUseCase.PaymentState{Step: paymentDomain.SuccessStep{Input: toBob, Draft: bobDraft}}

	t.Run("Success_ConfirmAfterPrompt", func(t *testing.T) {
		payments := &paymentMocks.MockPaymentUseCase{}
		payments.On("LoadBalances", ctx).Return([]string{"USD"}, nil).Once()
		payments.On("CreateDraft", ctx, toBob).Return(nil).Once()
		payments.On("State").Return(confirmState).Once()
		payments.On("Confirm", ctx).Return(nil).Once()
		payments.On("State").Return(successState).Once()

		var out bytes.Buffer
		err := RunInstantPayment(ctx, payments, discardLogger(), IOTuple{Reader: strings.NewReader("y\n"), Writer: &out}, toBob, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Payment PR-1 to bob")
		require.Contains(t, out.String(), "25.00 USD")
		require.Contains(t, out.String(), "Memo    lunch")
		require.Contains(t, out.String(), "Payment sent: PR-1")
		require.NotContains(t, out.String(), bobDraft.Timestamp)
		payments.AssertExpectations(t)
	})

	t.Run("Success_DeclineLeavesDraftUnposted", func(t *testing.T) {
		payments := &paymentMocks.MockPaymentUseCase{}
		payments.On("LoadBalances", ctx).Return([]string{"USD"}, nil).Once()
		payments.On("CreateDraft", ctx, toBob).Return(nil).Once()
		payments.On("State").Return(confirmState).Once()
		payments.On("Reset").Return(nil).Once()

		var out bytes.Buffer
		err := RunInstantPayment(ctx, payments, discardLogger(), IOTuple{Reader: strings.NewReader("\n"), Writer: &out}, toBob, false, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Payment not sent")
		payments.AssertNotCalled(t, "Confirm", mock.Anything)
	})

	t.Run("Error_CurrencyWithoutBalance", func(t *testing.T) {
		payments := &paymentMocks.MockPaymentUseCase{}
		payments.On("LoadBalances", ctx).Return([]string{"CAD"}, nil).Once()
		payments.On("CreateDraft", ctx, toBob).Return(paymentDomain.ErrCurrencyNotAllowed).Once()
		payments.On("State").Return(paymentUseCase.PaymentState{
			Step:  paymentDomain.FormStep{},
			Error: "currency_code: must be one of CAD.",
		}).Once()

		err := RunInstantPayment(ctx, payments, discardLogger(), IOTuple{Reader: strings.NewReader(""), Writer: &bytes.Buffer{}}, toBob, true, "text")

		require.ErrorIs(t, err, paymentDomain.ErrCurrencyNotAllowed)
		require.Contains(t, err.Error(), "must be one of CAD")
	})

	t.Run("Error_ConfirmTransportFailure", func(t *testing.T) {
		payments := &paymentMocks.MockPaymentUseCase{}
		payments.On("LoadBalances", ctx).Return([]string{"USD"}, nil).Once()
		payments.On("CreateDraft", ctx, toBob).Return(nil).Once()
		payments.On("State").Return(confirmState).Once()
		payments.On("Confirm", ctx).Return(apperrors.Wrap(apperrors.ErrUnavailable, "timeout")).Once()
		payments.On("State").Return(paymentUseCase.PaymentState{
			Step:  confirmState.Step,
			Error: paymentDomain.MsgConfirmUnavailable,
		}).Once()

		err := RunInstantPayment(ctx, payments, discardLogger(), IOTuple{Reader: strings.NewReader(""), Writer: &bytes.Buffer{}}, toBob, true, "json")

		require.ErrorIs(t, err, apperrors.ErrUnavailable)
		require.Contains(t, err.Error(), paymentDomain.MsgConfirmUnavailable)
	})
}
