// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jonboulle/clockwork"

	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
	"github.com/allisson/fxwallet/internal/config"
	"github.com/allisson/fxwallet/internal/database"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/gateway"
	"github.com/allisson/fxwallet/internal/http"
	"github.com/allisson/fxwallet/internal/metrics"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
	sessionRepository "github.com/allisson/fxwallet/internal/session/repository"
	sessionService "github.com/allisson/fxwallet/internal/session/service"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	config *config.Config
	ctx    context.Context

	// Infrastructure
	logger          *slog.Logger
	clock           clockwork.Clock
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Session
	tokenSealer    sessionService.TokenSealer
	keyValueStore  sessionRepository.KeyValueStore
	sessionStore   *sessionRepository.SessionStore
	authClient     *gateway.AuthClient
	sessionUseCase sessionUseCase.SessionUseCase

	// Remote API and workflows
	gatewayClient  *gateway.Client
	accountUseCase accountUseCase.AccountUseCase
	dealUseCase    fxUseCase.DealUseCase
	paymentUseCase paymentUseCase.PaymentUseCase
	dealHistory    fxUseCase.HistoryUseCase
	paymentHistory paymentUseCase.HistoryUseCase
	unsubscribers  []func()

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	clockInit           sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	tokenSealerInit     sync.Once
	keyValueStoreInit   sync.Once
	sessionStoreInit    sync.Once
	authClientInit      sync.Once
	sessionUseCaseInit  sync.Once
	gatewayClientInit   sync.Once
	accountUseCaseInit  sync.Once
	dealUseCaseInit     sync.Once
	paymentUseCaseInit  sync.Once
	dealHistoryInit     sync.Once
	paymentHistoryInit  sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
// ctx bounds the background work started by the components.
func NewContainer(ctx context.Context, cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		ctx:        ctx,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Clock returns the wall clock shared by every timer.
func (c *Container) Clock() clockwork.Clock {
	c.clockInit.Do(func() {
		c.clock = clockwork.NewRealClock()
	})
	return c.clock
}

// DB returns the database connection used by the SQL session stores.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// Shutdown stops background work and releases resources in dependency order.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}
	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	for _, unsubscribe := range c.unsubscribers {
		unsubscribe()
	}
	if c.dealUseCase != nil {
		c.dealUseCase.Close()
	}
	if c.sessionUseCase != nil {
		c.sessionUseCase.Close()
	}

	if c.tokenSealer != nil {
		if err := c.tokenSealer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("token sealer close: %w", err))
		}
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}
	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	return NewLogger(c.config.LogLevel)
}

// NewLogger writes JSON to stderr so command output on stdout stays parseable.
// Unknown levels fall back to info.
func NewLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func (c *Container) initDB() (*sql.DB, error) {
	driver := c.config.DBDriver()
	if driver == "" {
		return nil, fmt.Errorf("session store %q does not use a database", c.config.SessionStore)
	}

	db, err := database.Connect(c.ctx, database.Config{
		Driver:             driver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}
