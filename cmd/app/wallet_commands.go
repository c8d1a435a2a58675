package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fxwallet/cmd/app/commands"
	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	"github.com/allisson/fxwallet/internal/app"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
)

func getWalletCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "balances",
			Usage: "List account balances",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					accounts, err := container.AccountUseCase()
					if err != nil {
						return err
					}
					return commands.RunBalances(ctx, accounts, commands.DefaultIO().Writer, cmd.String("format"))
				})
			},
		},
		{
			Name:  "statement",
			Usage: "Show the statement of one account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "account-id",
					Usage: "Account to report on",
				},
				&cli.StringFlag{
					Name:    "currency",
					Aliases: []string{"c"},
					Usage:   "Report on the account in this currency instead of --account-id",
				},
				fromFlag(),
				toFlag(),
				daysFlag(accountDomain.DefaultStatementDays),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					start, end, err := commands.DateRange(cmd.String("from"), cmd.String("to"), cmd.Int("days"), container.Clock().Now())
					if err != nil {
						return err
					}
					accounts, err := container.AccountUseCase()
					if err != nil {
						return err
					}
					return commands.RunStatement(ctx, accounts, commands.DefaultIO().Writer, accountDomain.StatementQuery{
						AccountID:    cmd.String("account-id"),
						CurrencyCode: cmd.String("currency"),
						StartDate:    start,
						EndDate:      end,
					}, cmd.String("format"))
				})
			},
		},
		{
			Name:  "payments",
			Usage: "List past instant payments, newest first",
			Flags: []cli.Flag{
				fromFlag(),
				toFlag(),
				daysFlag(paymentDomain.DefaultHistoryDays),
				pageFlag(),
				pageSizeFlag(paymentDomain.DefaultPageSize, paymentDomain.MaxPageSize),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					start, end, err := commands.DateRange(cmd.String("from"), cmd.String("to"), cmd.Int("days"), container.Clock().Now())
					if err != nil {
						return err
					}
					history, err := container.PaymentHistoryUseCase()
					if err != nil {
						return err
					}
					return commands.RunPaymentHistory(ctx, history, commands.DefaultIO().Writer, paymentDomain.PaymentSearch{
						ValueDateMin: start,
						ValueDateMax: end,
						PageIndex:    cmd.Int("page") - 1,
						PageSize:     cmd.Int("page-size"),
					}, cmd.String("format"))
				})
			},
		},
		{
			Name:  "fx-history",
			Usage: "List booked FX deals, most recent first",
			Flags: []cli.Flag{
				pageFlag(),
				pageSizeFlag(fxDomain.DefaultPageSize, fxDomain.MaxPageSize),
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					history, err := container.DealHistoryUseCase()
					if err != nil {
						return err
					}
					return commands.RunFXHistory(ctx, history, commands.DefaultIO().Writer, fxDomain.DealSearch{
						PageIndex: cmd.Int("page") - 1,
						PageSize:  cmd.Int("page-size"),
					}, cmd.String("format"))
				})
			},
		},
		{
			Name:  "fx-currencies",
			Usage: "List the currencies available for FX deals",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					deals, err := container.DealUseCase()
					if err != nil {
						return err
					}
					return commands.RunFXCurrencies(ctx, deals, commands.DefaultIO(), cmd.String("format"))
				})
			},
		},
		{
			Name:  "fx-deal",
			Usage: "Request an FX quote and book it before it expires",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "buy",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Currency to buy (ISO code)",
				},
				&cli.StringFlag{
					Name:     "sell",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Currency to sell (ISO code)",
				},
				&cli.FloatFlag{
					Name:     "amount",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Amount of the deal",
				},
				&cli.StringFlag{
					Name:    "amount-currency",
					Aliases: []string{"c"},
					Usage:   "Currency the amount is in (defaults to the buy currency)",
				},
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Usage:   "Book without asking",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				amountCurrency := cmd.String("amount-currency")
				if amountCurrency == "" {
					amountCurrency = cmd.String("buy")
				}

				return withRestoredSession(ctx, func(container *app.Container) error {
					deals, err := container.DealUseCase()
					if err != nil {
						return err
					}
					return commands.RunFXDeal(
						ctx,
						deals,
						container.Logger(),
						commands.DefaultIO(),
						fxDomain.QuoteRequest{
							BuyCurrencyCode:    cmd.String("buy"),
							SellCurrencyCode:   cmd.String("sell"),
							Amount:             cmd.Float("amount"),
							AmountCurrencyCode: amountCurrency,
						},
						cmd.Bool("yes"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "instant-payment",
			Usage: "Send an instant payment after confirming the draft",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "to",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Recipient customer",
				},
				&cli.FloatFlag{
					Name:     "amount",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Amount to send",
				},
				&cli.StringFlag{
					Name:     "currency",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Currency with an available balance",
				},
				&cli.StringFlag{
					Name:    "memo",
					Aliases: []string{"m"},
					Usage:   "Memo shown to the recipient",
				},
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Usage:   "Confirm without asking",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withRestoredSession(ctx, func(container *app.Container) error {
					payments, err := container.PaymentUseCase()
					if err != nil {
						return err
					}
					return commands.RunInstantPayment(
						ctx,
						payments,
						container.Logger(),
						commands.DefaultIO(),
						paymentDomain.PaymentInput{
							ToCustomer:   cmd.String("to"),
							Amount:       cmd.Float("amount"),
							CurrencyCode: cmd.String("currency"),
							Memo:         cmd.String("memo"),
						},
						cmd.Bool("yes"),
						cmd.String("format"),
					)
				})
			},
		},
	}
}

func fromFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "from",
		Usage: "First day of the range (yyyy-mm-dd)",
	}
}

func toFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "to",
		Usage: "Last day of the range (yyyy-mm-dd), defaults to today",
	}
}

func daysFlag(value int) cli.Flag {
	return &cli.IntFlag{
		Name:    "days",
		Aliases: []string{"d"},
		Value:   value,
		Usage:   "Days to cover when --from is not given (7, 30 and 90 are typical)",
		Validator: func(days int) error {
			if days < 1 {
				return fmt.Errorf("invalid days %d (must be at least 1)", days)
			}
			return nil
		},
	}
}

func pageFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "page",
		Value: 1,
		Usage: "Page to show, starting at 1",
		Validator: func(page int) error {
			if page < 1 {
				return fmt.Errorf("invalid page %d (must be at least 1)", page)
			}
			return nil
		},
	}
}

func pageSizeFlag(value, maxSize int) cli.Flag {
	return &cli.IntFlag{
		Name:  "page-size",
		Value: value,
		Usage: fmt.Sprintf("Records per page (at most %d)", maxSize),
		Validator: func(size int) error {
			if size < 1 || size > maxSize {
				return fmt.Errorf("invalid page size %d (valid range: 1-%d)", size, maxSize)
			}
			return nil
		},
	}
}
