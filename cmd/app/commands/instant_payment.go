package commands

import (
	"context"
	"fmt"
	"log/slog"

	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	"github.com/allisson/fxwallet/internal/payment/http/dto"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

// RunInstantPayment creates a payment draft and posts it once the user confirms.
// Declining leaves the draft unposted on the server.
func RunInstantPayment(
	ctx context.Context,
	payments paymentUseCase.PaymentUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	input paymentDomain.PaymentInput,
	assumeYes bool,
	format string,
) error {
	if _, err := payments.LoadBalances(ctx); err != nil {
		return workflowError(payments.State().Error, err)
	}

	if err := payments.CreateDraft(ctx, input); err != nil {
		return workflowError(payments.State().Error, err)
	}

	response := dto.MapPaymentStateToResponse(payments.State())
	if format != "json" {
		_, _ = fmt.Fprintf(ioTuple.Writer, "Payment %s to %s\n", response.Draft.PaymentReference, input.ToCustomer)
		_, _ = fmt.Fprintf(ioTuple.Writer, "  Amount  %.2f %s\n", input.Amount, input.CurrencyCode)
		if input.Memo != "" {
			_, _ = fmt.Fprintf(ioTuple.Writer, "  Memo    %s\n", input.Memo)
		}
	}

	confirmed := assumeYes
	if !confirmed {
		var err error
		if confirmed, err = ioTuple.confirm("Send this payment?"); err != nil {
			return err
		}
	}

	if !confirmed {
		if err := payments.Reset(); err != nil {
			return workflowError(payments.State().Error, err)
		}
		logger.Info("payment draft not confirmed", slog.String("payment_id", response.Draft.PaymentID))
		if format == "json" {
			return writeJSON(ioTuple.Writer, dto.MapPaymentStateToResponse(payments.State()))
		}
		_, _ = fmt.Fprintln(ioTuple.Writer, "Payment not sent")
		return nil
	}

	if err := payments.Confirm(ctx); err != nil {
		return workflowError(payments.State().Error, err)
	}

	response = dto.MapPaymentStateToResponse(payments.State())
	if format == "json" {
		return writeJSON(ioTuple.Writer, response)
	}
	_, _ = fmt.Fprintf(ioTuple.Writer, "Payment sent: %s\n", response.Draft.PaymentReference)
	return nil
}
