package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	"github.com/allisson/fxwallet/internal/metrics"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

const (
	authenticatePath = "/api/v1/Authenticate"
	refreshPath      = "/api/v1/Authenticate/Refresh"
)

// AuthClient performs the unauthenticated token exchanges.
type AuthClient struct {
	transport *transport
	callerID  string
}

// NewAuthClient creates an AuthClient. A nil httpClient uses one with cfg.Timeout.
func NewAuthClient(
	cfg Config,
	httpClient *http.Client,
	logger *slog.Logger,
	businessMetrics metrics.BusinessMetrics,
) *AuthClient {
	return &AuthClient{
		transport: newTransport(cfg, httpClient, logger, businessMetrics),
		callerID:  cfg.CallerID,
	}
}

// Authenticate exchanges credentials for a grant carrying the user's profile.
func (c *AuthClient) Authenticate(ctx context.Context, credentials sessionDomain.Credentials) (grant *sessionDomain.Grant, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "authenticate", start, err) }(time.Now())

	payload, err := encode(authenticateRequest{
		LoginID:                             credentials.Username,
		Password:                            credentials.Password,
		CallerID:                            c.callerID,
		IncludeUserSettingsInResponse:       true,
		IncludeAccessRightsWithUserSettings: false,
	})
	if err != nil {
		return nil, err
	}

	return c.exchange(ctx, authenticatePath, payload)
}

// Refresh exchanges the current pair for a new one.
func (c *AuthClient) Refresh(ctx context.Context, tokens sessionDomain.TokenPair) (grant *sessionDomain.Grant, err error) {
	defer func(start time.Time) { c.transport.observe(ctx, "refresh", start, err) }(time.Now())

	payload, err := encode(refreshRequest{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return c.exchange(ctx, refreshPath, payload)
}

func (c *AuthClient) exchange(ctx context.Context, path string, payload []byte) (*sessionDomain.Grant, error) {
	r, err := c.transport.send(ctx, http.MethodPost, path, "", payload)
	if err != nil {
		return nil, err
	}

	var resp authResponse
	if err := decode(r, &resp); err != nil {
		return nil, err
	}

	grant, err := resp.toGrant()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnavailable, err.Error())
	}
	return grant, nil
}
