// Package gateway is the client of the remote banking API. It is the single boundary
// where wire responses become domain values, domain problems or transport errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	"github.com/allisson/fxwallet/internal/metrics"
)

const (
	metricsDomain = "gateway"

	requestIDHeader = "X-Request-Id"

	maxResponseBytes = 4 << 20
)

// Config holds the remote API settings.
type Config struct {
	BaseURL                 string
	CallerID                string
	Timeout                 time.Duration
	RateLimitRequestsPerSec float64
	RateLimitBurst          int
}

// transport sends JSON requests and classifies responses. It never retries.
type transport struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	metrics    metrics.BusinessMetrics
}

func newTransport(cfg Config, httpClient *http.Client, logger *slog.Logger, businessMetrics metrics.BusinessMetrics) *transport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RateLimitRequestsPerSec > 0 {
		limit = rate.Limit(cfg.RateLimitRequestsPerSec)
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	return &transport{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger,
		metrics:    businessMetrics,
	}
}

// reply is a raw HTTP outcome.
type reply struct {
	status int
	body   []byte
}

// send performs one HTTP exchange. Only failures to exchange are errors here.
func (t *transport) send(ctx context.Context, method, path, bearer string, payload []byte) (*reply, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}

	requestID := uuid.Must(uuid.NewV7()).String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Warn("remote request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, "request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, "failed to read response")
	}

	t.logger.Debug("remote request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
	)

	return &reply{status: resp.StatusCode, body: data}, nil
}

// decode classifies r. A non-empty problems field is a domain problem whatever the
// status; otherwise any non-2xx status or undecodable body is a transport error.
func decode(r *reply, out any) error {
	var envelope struct {
		Problems json.RawMessage `json:"problems"`
	}
	envelopeErr := json.Unmarshal(r.body, &envelope)
	if envelopeErr == nil {
		if text := problemText(envelope.Problems); text != "" {
			return apperrors.NewProblem(text)
		}
	}

	if r.status == http.StatusUnauthorized {
		return apperrors.Wrap(apperrors.ErrUnauthorized, "remote authority rejected the credentials")
	}
	if r.status < 200 || r.status > 299 {
		return apperrors.Wrap(apperrors.ErrUnavailable, fmt.Sprintf("unexpected status %d", r.status))
	}
	if out == nil && len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if envelopeErr != nil {
		return apperrors.Wrap(apperrors.ErrUnavailable, "undecodable response")
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return apperrors.Wrap(apperrors.ErrUnavailable, "undecodable response")
	}
	return nil
}

func encode(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode request")
	}
	return data, nil
}

// observe records the outcome of one gateway operation.
func (t *transport) observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, t.metrics, metricsDomain, operation, start, err)
}
