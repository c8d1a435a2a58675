package app

import (
	"database/sql"
	"fmt"

	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/gateway"
	"github.com/allisson/fxwallet/internal/http"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// GatewayClient returns the authenticated remote API client.
func (c *Container) GatewayClient() (*gateway.Client, error) {
	var err error
	c.gatewayClientInit.Do(func() {
		c.gatewayClient, err = c.initGatewayClient()
		if err != nil {
			c.initErrors["gatewayClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["gatewayClient"]; exists {
		return nil, storedErr
	}
	return c.gatewayClient, nil
}

// AccountUseCase returns the balances use case.
func (c *Container) AccountUseCase() (accountUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// DealUseCase returns the FX deal workflow. It is abandoned whenever the session ends.
func (c *Container) DealUseCase() (fxUseCase.DealUseCase, error) {
	var err error
	c.dealUseCaseInit.Do(func() {
		c.dealUseCase, err = c.initDealUseCase()
		if err != nil {
			c.initErrors["dealUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dealUseCase"]; exists {
		return nil, storedErr
	}
	return c.dealUseCase, nil
}

// PaymentUseCase returns the instant payment workflow. It is abandoned whenever the
// session ends.
func (c *Container) PaymentUseCase() (paymentUseCase.PaymentUseCase, error) {
	var err error
	c.paymentUseCaseInit.Do(func() {
		c.paymentUseCase, err = c.initPaymentUseCase()
		if err != nil {
			c.initErrors["paymentUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["paymentUseCase"]; exists {
		return nil, storedErr
	}
	return c.paymentUseCase, nil
}

// DealHistoryUseCase returns the booked FX deal search.
func (c *Container) DealHistoryUseCase() (fxUseCase.HistoryUseCase, error) {
	var err error
	c.dealHistoryInit.Do(func() {
		c.dealHistory, err = c.initDealHistoryUseCase()
		if err != nil {
			c.initErrors["dealHistory"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dealHistory"]; exists {
		return nil, storedErr
	}
	return c.dealHistory, nil
}

// PaymentHistoryUseCase returns the instant payment search.
func (c *Container) PaymentHistoryUseCase() (paymentUseCase.HistoryUseCase, error) {
	var err error
	c.paymentHistoryInit.Do(func() {
		c.paymentHistory, err = c.initPaymentHistoryUseCase()
		if err != nil {
			c.initErrors["paymentHistory"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["paymentHistory"]; exists {
		return nil, storedErr
	}
	return c.paymentHistory, nil
}

// HTTPServer returns the presentation API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

func (c *Container) initGatewayClient() (*gateway.Client, error) {
	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for gateway client: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for gateway client: %w", err)
	}

	return gateway.NewClient(c.gatewayConfig(), nil, sessions, c.Logger(), businessMetrics), nil
}

func (c *Container) initAccountUseCase() (accountUseCase.AccountUseCase, error) {
	client, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for account use case: %w", err)
	}

	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for account use case: %w", err)
	}

	return accountUseCase.NewAccountUseCase(client, sessions, c.Clock()), nil
}

func (c *Container) initDealHistoryUseCase() (fxUseCase.HistoryUseCase, error) {
	client, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for deal history use case: %w", err)
	}
	return fxUseCase.NewHistoryUseCase(client), nil
}

func (c *Container) initPaymentHistoryUseCase() (paymentUseCase.HistoryUseCase, error) {
	client, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for payment history use case: %w", err)
	}
	return paymentUseCase.NewHistoryUseCase(client, c.Clock()), nil
}

func (c *Container) initDealUseCase() (fxUseCase.DealUseCase, error) {
	client, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for deal use case: %w", err)
	}

	var useCase fxUseCase.DealUseCase = fxUseCase.NewDealUseCase(
		client,
		c.Clock(),
		c.config.QuoteTickInterval,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for deal use case: %w", err)
		}
		useCase = fxUseCase.NewDealUseCaseWithMetrics(useCase, businessMetrics)
	}

	if err := c.abandonOnSessionEnd(useCase.Abandon); err != nil {
		return nil, fmt.Errorf("failed to subscribe deal use case to session: %w", err)
	}
	return useCase, nil
}

func (c *Container) initPaymentUseCase() (paymentUseCase.PaymentUseCase, error) {
	client, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for payment use case: %w", err)
	}

	accounts, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for payment use case: %w", err)
	}

	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for payment use case: %w", err)
	}

	var useCase paymentUseCase.PaymentUseCase = paymentUseCase.NewPaymentUseCase(
		client,
		accounts,
		sessions,
		c.Clock(),
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for payment use case: %w", err)
		}
		useCase = paymentUseCase.NewPaymentUseCaseWithMetrics(useCase, businessMetrics)
	}

	if err := c.abandonOnSessionEnd(useCase.Abandon); err != nil {
		return nil, fmt.Errorf("failed to subscribe payment use case to session: %w", err)
	}
	return useCase, nil
}

// abandonOnSessionEnd calls abandon each time an unauthenticated session is published,
// which happens on logout and on a failed refresh.
func (c *Container) abandonOnSessionEnd(abandon func()) error {
	sessions, err := c.SessionUseCase()
	if err != nil {
		return err
	}

	unsubscribe := sessions.Subscribe(func(session sessionDomain.Session) {
		if !session.IsAuthenticated() {
			abandon()
		}
	})

	c.mu.Lock()
	c.unsubscribers = append(c.unsubscribers, unsubscribe)
	c.mu.Unlock()
	return nil
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	sessions, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for http server: %w", err)
	}
	accounts, err := c.AccountUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get account use case for http server: %w", err)
	}
	deals, err := c.DealUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get deal use case for http server: %w", err)
	}
	payments, err := c.PaymentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment use case for http server: %w", err)
	}
	dealHistory, err := c.DealHistoryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get deal history use case for http server: %w", err)
	}
	paymentHistory, err := c.PaymentHistoryUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment history use case for http server: %w", err)
	}
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	var db *sql.DB
	if c.config.DBDriver() != "" {
		if db, err = c.DB(); err != nil {
			return nil, fmt.Errorf("failed to get database for http server: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(
		c.ctx,
		c.config,
		sessions,
		accounts,
		deals,
		dealHistory,
		payments,
		paymentHistory,
		metricsProvider,
		c.config.MetricsNamespace,
	)
	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
