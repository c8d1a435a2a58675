package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	accountDTO "github.com/allisson/fxwallet/internal/account/http/dto"
	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
	apperrors "github.com/allisson/fxwallet/internal/errors"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	fxDTO "github.com/allisson/fxwallet/internal/fx/http/dto"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	paymentDTO "github.com/allisson/fxwallet/internal/payment/http/dto"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

// DateRange resolves the --from, --to and --days flags. Empty dates stay zero unless
// days is set, in which case the range ends at to (or today) and spans days days.
func DateRange(from, to string, days int, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if from != "" {
		if start, err = time.Parse(accountDomain.DateLayout, from); err != nil {
			return time.Time{}, time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("from: %q is not a yyyy-mm-dd date", from))
		}
	}
	if to != "" {
		if end, err = time.Parse(accountDomain.DateLayout, to); err != nil {
			return time.Time{}, time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("to: %q is not a yyyy-mm-dd date", to))
		}
	}

	if days < 0 {
		return time.Time{}, time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "days: must not be negative")
	}
	if days > 0 && start.IsZero() {
		if end.IsZero() {
			y, m, d := now.UTC().Date()
			end = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
		start = end.AddDate(0, 0, -days)
	}
	return start, end, nil
}

// RunStatement prints the statement of one account with its totals.
func RunStatement(
	ctx context.Context,
	accounts accountUseCase.AccountUseCase,
	w io.Writer,
	query accountDomain.StatementQuery,
	format string,
) error {
	statement, err := accounts.Statement(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to get statement: %w", err)
	}

	response := accountDTO.MapStatementToResponse(statement)
	if format == "json" {
		return writeJSON(w, response)
	}

	account := response.Account
	_, _ = fmt.Fprintf(w, "Account %s %s %s\n", account.AccountNumber, account.CurrencyCode, account.AccountName)
	_, _ = fmt.Fprintf(w, "Period %s to %s\n", response.StartDate, response.EndDate)
	_, _ = fmt.Fprintf(w, "Beginning balance %.2f\n\n", account.BeginningBalance)

	if len(response.Entries) == 0 {
		_, _ = fmt.Fprintln(w, "No transactions")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "DATE\tTYPE\tDESCRIPTION\tDEBIT\tCREDIT\tBALANCE\t")
		for _, e := range response.Entries {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%.2f\t\n",
				formatDate(e.TransactionTime), e.TransactionType, e.Description,
				formatAmount(e.DebitAmount), formatAmount(e.CreditAmount), e.RunningBalance)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(w, "\nEnding balance %.2f\n", account.EndingBalance)
	_, _ = fmt.Fprintf(w, "Total debits %.2f, total credits %.2f, net change %+.2f\n",
		response.TotalDebits, response.TotalCredits, response.NetChange)
	return nil
}

// RunPaymentHistory prints one page of past instant payments.
func RunPaymentHistory(
	ctx context.Context,
	history paymentUseCase.HistoryUseCase,
	w io.Writer,
	search paymentDomain.PaymentSearch,
	format string,
) error {
	page, err := history.Search(ctx, search)
	if err != nil {
		return fmt.Errorf("failed to search payments: %w", err)
	}

	response := paymentDTO.MapHistoryToResponse(page)
	if format == "json" {
		return writeJSON(w, response)
	}

	if len(response.Data) == 0 {
		_, _ = fmt.Fprintln(w, "No payments")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CREATED\tREFERENCE\tFROM\tTO\tAMOUNT\tSTATUS\tMEMO\t")
	for _, p := range response.Data {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f %s\t%s\t%s\t\n",
			formatDate(p.CreatedTime), p.PaymentReference, p.FromCustomer, p.ToCustomer,
			p.Amount, p.CurrencyCode, p.Status, p.Memo)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Page %d, %d of %d payments\n", response.Page+1, len(response.Data), response.TotalCount)
	return nil
}

// RunFXHistory prints one page of booked FX deals.
func RunFXHistory(
	ctx context.Context,
	history fxUseCase.HistoryUseCase,
	w io.Writer,
	search fxDomain.DealSearch,
	format string,
) error {
	page, err := history.Search(ctx, search)
	if err != nil {
		return fmt.Errorf("failed to search fx deals: %w", err)
	}

	response := fxDTO.MapHistoryToResponse(page)
	if format == "json" {
		return writeJSON(w, response)
	}

	if len(response.Data) == 0 {
		_, _ = fmt.Fprintln(w, "No deals")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BOOKED\tREFERENCE\tTYPE\tSELL\tBUY\tRATE\tVALUE DATE\t")
	for _, d := range response.Data {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			formatDate(d.BookedTime), d.DealReference, d.DealTypeName,
			d.SellAmount, d.BuyAmount, d.BookedRate, d.FinalValueDate)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Page %d, %d of %d deals\n", response.Page+1, len(response.Data), response.TotalCount)
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(accountDomain.DateLayout)
}

func formatAmount(amount float64) string {
	if amount == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", amount)
}
