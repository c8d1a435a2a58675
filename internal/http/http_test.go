package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/allisson/fxwallet/internal/account/domain"
	accountMocks "github.com/allisson/fxwallet/internal/account/http/mocks"
	"github.com/allisson/fxwallet/internal/config"
	fxDomain "github.com/allisson/fxwallet/internal/fx/domain"
	fxMocks "github.com/allisson/fxwallet/internal/fx/http/mocks"
	"github.com/allisson/fxwallet/internal/metrics"
	paymentDomain "github.com/allisson/fxwallet/internal/payment/domain"
	paymentMocks "github.com/allisson/fxwallet/internal/payment/http/mocks"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	sessionMocks "github.com/allisson/fxwallet/internal/session/http/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer() *Server {
	return NewServer(nil, "localhost", 0, discardLogger())
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var response map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestReadinessHandler(t *testing.T) {
	serve := func(server *Server) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.readinessHandler(c)
		return w
	}

	t.Run("Error_NoSessionManager", func(t *testing.T) {
		w := serve(createTestServer())

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		response := decode(t, w)
		assert.Equal(t, "not_ready", response["status"])
		assert.Equal(t, map[string]any{"session": "error"}, response["components"])
	})

	t.Run("Error_SessionRestoring", func(t *testing.T) {
		sessions := &sessionMocks.MockSessionUseCase{}
		sessions.On("Ready").Return(false)
		server := createTestServer()
		server.sessions = sessions

		w := serve(server)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, map[string]any{"session": "restoring"}, decode(t, w)["components"])
	})

	t.Run("Success_WithDatabase", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing()

		sessions := &sessionMocks.MockSessionUseCase{}
		sessions.On("Ready").Return(true)
		server := NewServer(db, "localhost", 0, discardLogger())
		server.sessions = sessions

		w := serve(server)

		assert.Equal(t, http.StatusOK, w.Code)
		response := decode(t, w)
		assert.Equal(t, "ready", response["status"])
		assert.Equal(t, map[string]any{"session": "ok", "database": "ok"}, response["components"])
		assert.NoError(t, dbMock.ExpectationsWereMet())
	})

	t.Run("Error_DatabaseDown", func(t *testing.T) {
		db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		dbMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		sessions := &sessionMocks.MockSessionUseCase{}
		sessions.On("Ready").Return(true)
		server := NewServer(db, "localhost", 0, discardLogger())
		server.sessions = sessions

		w := serve(server)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, map[string]any{"session": "ok", "database": "error"}, decode(t, w)["components"])
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test?verbose=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, w.Header().Get("X-Request-Id"), entry["request_id"])
	assert.Equal(t, "/test", entry["path"])
	assert.Equal(t, "verbose=1", entry["query"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type routerMocks struct {
	sessions *sessionMocks.MockSessionUseCase
	accounts *accountMocks.MockAccountUseCase
	deals          *fxMocks.MockDealUseCase
	dealHistory    *fxMocks.MockHistoryUseCase
	payments       *paymentMocks.MockPaymentUseCase
	paymentHistory *paymentMocks.MockHistoryUseCase
}

func setupTestRouter(t *testing.T) (*Server, routerMocks) {
	t.Helper()

	m := routerMocks{
		sessions: &sessionMocks.MockSessionUseCase{},
		accounts: &accountMocks.MockAccountUseCase{},
		deals:          &fxMocks.MockDealUseCase{},
		dealHistory:    &fxMocks.MockHistoryUseCase{},
		payments:       &paymentMocks.MockPaymentUseCase{},
		paymentHistory: &paymentMocks.MockHistoryUseCase{},
	}

	server := createTestServer()
	server.SetupRouter(
		context.Background(),
		&config.Config{LoginRateLimitEnabled: false},
		m.sessions,
		m.accounts,
		m.deals,
		m.dealHistory,
		m.payments,
		m.paymentHistory,
		nil,
		"",
	)
	return server, m
}

func TestSetupRouter(t *testing.T) {
	t.Run("Success_HealthThroughRouter", func(t *testing.T) {
		server, _ := setupTestRouter(t)

		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("Error_ProtectedRouteWhileRestoring", func(t *testing.T) {
		server, m := setupTestRouter(t)
		m.sessions.On("Ready").Return(false)

		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/balances", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
		m.accounts.AssertNotCalled(t, "Balances", mock.Anything)
	})

	t.Run("Error_ProtectedRouteWithoutSession", func(t *testing.T) {
		server, m := setupTestRouter(t)
		m.sessions.On("Ready").Return(true)
		m.sessions.On("Current").Return(sessionDomain.Session{})

		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/fx/deal", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success_ProtectedRouteWithSession", func(t *testing.T) {
		server, m := setupTestRouter(t)
		m.sessions.On("Ready").Return(true)
		m.sessions.On("Current").Return(sessionDomain.Session{
			User:   &sessionDomain.UserProfile{UserName: "alice", OrganizationID: "org-1"},
			Tokens: &sessionDomain.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)},
		})
		m.accounts.On("Balances", mock.Anything).Return([]accountDomain.Balance{
			{AccountID: "a-1", CurrencyCode: "USD", BalanceAvailable: 10},
		}, nil).Once()

		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/balances", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"spendable_currencies":["USD"]`)
	})

	t.Run("Success_HistoryRoutesWithSession", func(t *testing.T) {
		server, m := setupTestRouter(t)
		m.sessions.On("Ready").Return(true)
		m.sessions.On("Current").Return(sessionDomain.Session{
			User:   &sessionDomain.UserProfile{UserName: "alice", OrganizationID: "org-1"},
			Tokens: &sessionDomain.TokenPair{AccessToken: "a", RefreshToken: "r", ExpiresAt: time.Now().Add(time.Hour)},
		})
		m.accounts.On("Statement", mock.Anything, mock.Anything).
			Return(&accountDomain.Statement{Account: accountDomain.StatementAccount{AccountID: "12"}}, nil).Once()
		m.paymentHistory.On("Search", mock.Anything, mock.Anything).
			Return(&paymentDomain.PaymentPage{}, nil).Once()
		m.dealHistory.On("Search", mock.Anything, mock.Anything).
			Return(&fxDomain.DealPage{}, nil).Once()

		for _, path := range []string{"/v1/statement?account_id=12", "/v1/payments/history", "/v1/fx/deals"} {
			w := httptest.NewRecorder()
			server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
		m.accounts.AssertExpectations(t)
		m.paymentHistory.AssertExpectations(t)
		m.dealHistory.AssertExpectations(t)
	})

	t.Run("Error_HistoryRouteWithoutSession", func(t *testing.T) {
		server, m := setupTestRouter(t)
		m.sessions.On("Ready").Return(true)
		m.sessions.On("Current").Return(sessionDomain.Session{})

		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/history", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.paymentHistory.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("Error_NoMetricsEndpoint", func(t *testing.T) {
		server, _ := setupTestRouter(t)

		w := httptest.NewRecorder()
		server.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server, _ := setupTestRouter(t)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 0, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}
