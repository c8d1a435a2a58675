package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider()

	require.NoError(t, err)
	assert.NotNil(t, provider.MeterProvider())
	assert.NotNil(t, provider.Handler())
	assert.NotNil(t, provider.registry)
}

func TestProvider_Isolated(t *testing.T) {
	first, err := NewProvider()
	require.NoError(t, err)
	second, err := NewProvider()
	require.NoError(t, err)

	bm, err := NewBusinessMetrics(first.MeterProvider(), "isolated")
	require.NoError(t, err)
	bm.RecordOperation(context.Background(), "fx", "book_deal", StatusSuccess)

	firstBody := scrape(t, first)
	assert.Contains(t, firstBody, "isolated_operations_total")
	assert.Contains(t, firstBody, `service_name="fxwallet"`)
	assert.NotContains(t, scrape(t, second), "isolated_operations_total")
}

func TestProvider_Shutdown(t *testing.T) {
	t.Run("Success_ShutdownProvider", func(t *testing.T) {
		provider, err := NewProvider()
		require.NoError(t, err)

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_ShutdownNilProvider", func(t *testing.T) {
		provider := &Provider{}

		assert.NoError(t, provider.Shutdown(context.Background()))
	})

	t.Run("Success_ShutdownNilPointer", func(t *testing.T) {
		var provider *Provider

		assert.NoError(t, provider.Shutdown(context.Background()))
	})
}
