package commands

import (
	"context"
	"fmt"
	"log/slog"

	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	"github.com/allisson/fxwallet/internal/fx/http/dto"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
)

// RunFXDeal requests a quote, shows it with its countdown and books it once the user
// accepts. assumeYes books without asking. A quote that expires while the prompt is
// open cannot be booked.
func RunFXDeal(
	ctx context.Context,
	deals fxUseCase.DealUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
	request fxDomain.QuoteRequest,
	assumeYes bool,
	format string,
) error {
	if err := deals.RequestQuote(ctx, request); err != nil {
		return workflowError(deals.State().Error, err)
	}

	state := deals.State()
	response := dto.MapDealStateToResponse(state)
	if response.Quote == nil {
		return workflowError(state.Error, fxDomain.ErrQuoteExpired)
	}
	if format != "json" {
		printQuote(ioTuple, response)
	}

	book := assumeYes
	if !book {
		var err error
		if book, err = ioTuple.confirm("Book this deal?"); err != nil {
			_ = deals.Cancel()
			return err
		}
	}

	if !book {
		if err := deals.Cancel(); err != nil {
			return workflowError(deals.State().Error, err)
		}
		logger.Info("quote cancelled", slog.String("quote_id", response.Quote.QuoteID))
		if format == "json" {
			return writeJSON(ioTuple.Writer, dto.MapDealStateToResponse(deals.State()))
		}
		_, _ = fmt.Fprintln(ioTuple.Writer, "Quote cancelled")
		return nil
	}

	if err := deals.BookDeal(ctx); err != nil {
		return workflowError(deals.State().Error, err)
	}

	response = dto.MapDealStateToResponse(deals.State())
	if format == "json" {
		return writeJSON(ioTuple.Writer, response)
	}
	_, _ = fmt.Fprintf(ioTuple.Writer, "Deal booked: %s\n", response.Deal.DealReference)
	_, _ = fmt.Fprintf(ioTuple.Writer, "Deposit: %s\n", response.Deal.DepositReference)
	return nil
}

// RunFXCurrencies lists the currencies that can be bought and sold.
func RunFXCurrencies(ctx context.Context, deals fxUseCase.DealUseCase, ioTuple IOTuple, format string) error {
	lists, err := deals.Currencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies: %w", err)
	}

	if format == "json" {
		return writeJSON(ioTuple.Writer, dto.CurrencyListsResponse{Buy: lists.Buy, Sell: lists.Sell})
	}

	_, _ = fmt.Fprintln(ioTuple.Writer, "Buy:")
	for _, currency := range lists.Buy {
		_, _ = fmt.Fprintf(ioTuple.Writer, "  %s  %s\n", currency.Code, currency.Name)
	}
	_, _ = fmt.Fprintln(ioTuple.Writer, "Sell:")
	for _, currency := range lists.Sell {
		_, _ = fmt.Fprintf(ioTuple.Writer, "  %s  %s\n", currency.Code, currency.Name)
	}
	return nil
}

func printQuote(ioTuple IOTuple, response dto.DealStateResponse) {
	quote := response.Quote
	_, _ = fmt.Fprintf(ioTuple.Writer, "Quote %s\n", quote.QuoteReference)
	_, _ = fmt.Fprintf(ioTuple.Writer, "  Buy   %s %s\n", quote.BuyAmount, quote.BuyCurrencyCode)
	_, _ = fmt.Fprintf(ioTuple.Writer, "  Sell  %s %s\n", quote.SellAmount, quote.SellCurrencyCode)
	_, _ = fmt.Fprintf(ioTuple.Writer, "  Rate  %s (%s)\n", quote.Rate, quote.Symbol)
	_, _ = fmt.Fprintf(ioTuple.Writer, "  Value date %s\n", quote.ValueDate)
	_, _ = fmt.Fprintf(ioTuple.Writer, "Expires in %s\n", response.Remaining)
}

// workflowError prefers the workflow's user-facing message.
func workflowError(message string, err error) error {
	if message == "" || message == err.Error() {
		return err
	}
	return fmt.Errorf("%s: %w", message, err)
}
