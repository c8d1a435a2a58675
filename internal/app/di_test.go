package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/fxwallet/internal/config"
	"github.com/allisson/fxwallet/internal/metrics"
	sessionRepository "github.com/allisson/fxwallet/internal/session/repository"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		APIBaseURL:        "http://127.0.0.1:1",
		APICallerID:       "caller",
		APITimeout:        time.Second,
		SessionStore:      "memory",
		SessionProfile:    "test",
		SessionFilePath:   filepath.Join(t.TempDir(), "session.json"),
		TokenPollInterval: time.Minute,
		TokenExpiryLeeway: time.Minute,
		QuoteTickInterval: time.Second,
		LogLevel:          "info",
		ServerHost:        "127.0.0.1",
		ServerPort:        0,
		MetricsNamespace:  "fxwallet_test",
	}
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)

	container := NewContainer(context.Background(), cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainerLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.LogLevel = level
			container := NewContainer(context.Background(), cfg)

			assert.Nil(t, container.logger)
			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

func TestContainerDB(t *testing.T) {
	t.Run("Error_StoreWithoutDatabase", func(t *testing.T) {
		container := NewContainer(context.Background(), testConfig(t))

		_, err := container.DB()
		assert.Error(t, err)

		_, err = container.DB()
		assert.Error(t, err, "the init error is remembered")
	})
}

func TestContainerKeyValueStore(t *testing.T) {
	t.Run("Success_Memory", func(t *testing.T) {
		container := NewContainer(context.Background(), testConfig(t))

		kv, err := container.KeyValueStore()

		require.NoError(t, err)
		assert.IsType(t, &sessionRepository.MemoryKVRepository{}, kv)
	})

	t.Run("Success_File", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SessionStore = "file"
		container := NewContainer(context.Background(), cfg)

		kv, err := container.KeyValueStore()

		require.NoError(t, err)
		assert.IsType(t, &sessionRepository.FileKVRepository{}, kv)
	})

	t.Run("Error_Unsupported", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SessionStore = "redis"
		container := NewContainer(context.Background(), cfg)

		_, err := container.KeyValueStore()

		assert.ErrorContains(t, err, "unsupported session store")
	})
}

func TestContainerTokenSealer(t *testing.T) {
	t.Run("Error_InvalidLocalKey", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SessionEncryptionKey = "not-base64!"
		container := NewContainer(context.Background(), cfg)

		_, err := container.SessionStore()

		assert.Error(t, err)
	})
}

func TestContainerBusinessMetrics(t *testing.T) {
	t.Run("Success_DisabledIsNoOp", func(t *testing.T) {
		container := NewContainer(context.Background(), testConfig(t))

		businessMetrics, err := container.BusinessMetrics()

		require.NoError(t, err)
		assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, metricsServer)
	})

	t.Run("Success_Enabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.MetricsEnabled = true
		container := NewContainer(context.Background(), cfg)
		t.Cleanup(func() { assert.NoError(t, container.Shutdown(context.Background())) })

		metricsServer, err := container.MetricsServer()

		require.NoError(t, err)
		assert.NotNil(t, metricsServer)
	})
}

func TestContainerFullGraph(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = true
	container := NewContainer(context.Background(), cfg)

	server, err := container.HTTPServer()
	require.NoError(t, err)
	require.NotNil(t, server)

	deals, err := container.DealUseCase()
	require.NoError(t, err)
	payments, err := container.PaymentUseCase()
	require.NoError(t, err)
	sessions, err := container.SessionUseCase()
	require.NoError(t, err)

	dealHistory, err := container.DealHistoryUseCase()
	require.NoError(t, err)
	assert.NotNil(t, dealHistory)
	paymentHistory, err := container.PaymentHistoryUseCase()
	require.NoError(t, err)
	assert.NotNil(t, paymentHistory)

	_, err = sessions.Restore(context.Background())
	require.NoError(t, err)
	assert.True(t, sessions.Ready())
	assert.Equal(t, "form", deals.State().Step.Name())
	assert.Equal(t, "form", payments.State().Step.Name())

	require.NoError(t, container.Shutdown(context.Background()))
}

func TestContainerShutdown(t *testing.T) {
	container := NewContainer(context.Background(), testConfig(t))

	assert.NoError(t, container.Shutdown(context.Background()))
}

func TestNewLogger(t *testing.T) {
	ctx := context.Background()

	assert.True(t, NewLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewLogger("warn").Enabled(ctx, slog.LevelInfo))
	assert.True(t, NewLogger("ERROR").Enabled(ctx, slog.LevelError))
	assert.True(t, NewLogger("verbose").Enabled(ctx, slog.LevelInfo))
	assert.False(t, NewLogger("verbose").Enabled(ctx, slog.LevelDebug))
}
