// Package http provides the presentation API server and its router.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/allisson/fxwallet/internal/account/http"
	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
	"github.com/allisson/fxwallet/internal/config"
	fxHTTP "github.com/allisson/fxwallet/internal/fx/http"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/metrics"
	paymentHTTP "github.com/allisson/fxwallet/internal/payment/http"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
	sessionHTTP "github.com/allisson/fxwallet/internal/session/http"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
)

// Server represents the presentation API server.
type Server struct {
	server   *http.Server
	router   *gin.Engine
	logger   *slog.Logger
	db       *sql.DB
	sessions sessionUseCase.SessionUseCase
}

// NewServer creates a new HTTP server. db is nil unless a SQL session store is in use.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter configures the Gin router with all routes and middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	sessions sessionUseCase.SessionUseCase,
	accounts accountUseCase.AccountUseCase,
	deals fxUseCase.DealUseCase,
	dealHistory fxUseCase.HistoryUseCase,
	payments paymentUseCase.PaymentUseCase,
	paymentHistory paymentUseCase.HistoryUseCase,
	metricsProvider *metrics.Provider,
	metricsNamespace string,
) {
	s.sessions = sessions

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	sessionHandler := sessionHTTP.NewSessionHandler(sessions, s.logger)
	balanceHandler := accountHTTP.NewBalanceHandler(accounts, s.logger)
	statementHandler := accountHTTP.NewStatementHandler(accounts, s.logger)
	dealHandler := fxHTTP.NewDealHandler(deals, s.logger)
	dealHistoryHandler := fxHTTP.NewHistoryHandler(dealHistory, s.logger)
	paymentHandler := paymentHTTP.NewPaymentHandler(payments, s.logger)
	paymentHistoryHandler := paymentHTTP.NewHistoryHandler(paymentHistory, s.logger)

	v1 := router.Group("/v1")

	session := v1.Group("/session")
	{
		login := []gin.HandlerFunc{}
		if cfg.LoginRateLimitEnabled {
			login = append(login, sessionHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.LoginRateLimitRequestsPerSec,
				cfg.LoginRateLimitBurst,
				s.logger,
			))
		}
		login = append(login, sessionHandler.LoginHandler)

		session.POST("", login...)
		session.GET("", sessionHandler.GetHandler)
		session.POST("/refresh", sessionHandler.RefreshHandler)
		session.DELETE("", sessionHandler.LogoutHandler)
	}

	protected := v1.Group("")
	protected.Use(sessionHTTP.RequireSession(sessions, s.logger))
	{
		protected.GET("/balances", balanceHandler.ListHandler)
		protected.GET("/statement", statementHandler.GetHandler)
		protected.GET("/payments/history", paymentHistoryHandler.ListHandler)

		fx := protected.Group("/fx")
		fx.GET("/currencies", dealHandler.CurrenciesHandler)
		fx.GET("/deals", dealHistoryHandler.ListHandler)
		fx.GET("/deal", dealHandler.GetHandler)
		fx.POST("/deal/quote", dealHandler.QuoteHandler)
		fx.POST("/deal/book", dealHandler.BookHandler)
		fx.POST("/deal/cancel", dealHandler.CancelHandler)
		fx.POST("/deal/reset", dealHandler.ResetHandler)

		instant := protected.Group("/payments/instant")
		instant.GET("", paymentHandler.GetHandler)
		instant.POST("/balances", paymentHandler.LoadBalancesHandler)
		instant.POST("/review", paymentHandler.ReviewHandler)
		instant.POST("/back", paymentHandler.BackHandler)
		instant.POST("/draft", paymentHandler.DraftHandler)
		instant.POST("/confirm", paymentHandler.ConfirmHandler)
		instant.POST("/reset", paymentHandler.ResetHandler)
	}

	s.router = router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(_ context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready once the session is restored and, for SQL session
// stores, the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	switch {
	case s.sessions == nil:
		components["session"] = "error"
		ready = false
	case !s.sessions.Ready():
		components["session"] = "restoring"
		ready = false
	default:
		components["session"] = "ok"
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("database ping failed", slog.Any("error", err))
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
