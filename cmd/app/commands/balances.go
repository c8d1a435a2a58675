package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/allisson/fxwallet/internal/account/http/dto"
	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
)

// RunBalances lists the balances of the logged-in organization.
func RunBalances(ctx context.Context, accounts accountUseCase.AccountUseCase, w io.Writer, format string) error {
	balances, err := accounts.Balances(ctx)
	if err != nil {
		return fmt.Errorf("failed to list balances: %w", err)
	}

	response := dto.MapBalancesToResponse(balances)
	if format == "json" {
		return writeJSON(w, response)
	}

	if len(response.Data) == 0 {
		_, _ = fmt.Fprintln(w, "No accounts")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	_, _ = fmt.Fprintln(tw, "CURRENCY\tACCOUNT\tBALANCE\tAVAILABLE\tHOLDS\t")
	for _, b := range response.Data {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%.2f\t\n",
			b.CurrencyCode, b.AccountNumber, b.Balance, b.BalanceAvailable, b.ActiveHoldsTotal)
	}
	return tw.Flush()
}
