package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider()
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "fxwallet_test"))
	router.GET("/v1/fx/deal", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"step": "form"})
	})
	router.POST("/v1/fx/deal/:action", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"error": "invalid_transition"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/fx/deal", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	for _, action := range []string{"book", "cancel"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/fx/deal/"+action, nil))
		assert.Equal(t, http.StatusConflict, w.Code)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	output := scrape(t, provider)

	assertMetricLine(t, output, `fxwallet_test_http_requests_total`,
		`method="GET".*path="/v1/fx/deal".*status_code="200"`, `3`)
	assertMetricLine(t, output, `fxwallet_test_http_requests_total`,
		`method="POST".*path="/v1/fx/deal/:action".*status_code="409"`, `2`)
	assertMetricLine(t, output, `fxwallet_test_http_requests_total`,
		`path="unknown".*status_code="404"`, `1`)
}

func TestRouteOf(t *testing.T) {
	assert.Equal(t, "/v1/payments/instant/:action", routeOf("/v1/payments/instant/:action"))
	assert.Equal(t, "/", routeOf("/"))
	assert.Equal(t, "unknown", routeOf(""))
}
