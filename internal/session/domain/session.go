// Package domain defines the authenticated session of the wallet client.
//
// A session is the pair of the user's profile and the bearer token pair issued by the
// remote banking API. The token pair's absolute expiry is computed once, at issuance,
// from the lifetime the server declares; it is never read back out of the token.
package domain

import (
	"time"
)

// TokenPair holds the bearer credentials of a session.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`  //nolint:gosec // opaque bearer token
	RefreshToken string    `json:"refresh_token"` //nolint:gosec // opaque refresh token
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewTokenPair builds a TokenPair expiring lifetimeMinutes after issuedAt.
func NewTokenPair(accessToken, refreshToken string, issuedAt time.Time, lifetimeMinutes int) TokenPair {
	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    issuedAt.Add(time.Duration(lifetimeMinutes) * time.Minute).UTC(),
	}
}

// IsExpired reports whether the pair must be refreshed at now. The leeway moves the
// effective expiry earlier so a token is not handed out seconds before it dies.
func (t TokenPair) IsExpired(now time.Time, leeway time.Duration) bool {
	return !now.Before(t.ExpiresAt.Add(-leeway))
}

// UserProfile is the user settings record returned on authentication.
type UserProfile struct {
	UserID            string `json:"user_id"`
	UserName          string `json:"user_name"`
	OrganizationID    string `json:"organization_id"`
	OrganizationName  string `json:"organization_name"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	EmailAddress      string `json:"email_address"`
	BranchName        string `json:"branch_name"`
	BaseCurrencyCode  string `json:"base_currency_code"`
	PreferredLanguage string `json:"preferred_language"`
	CultureCode       string `json:"culture_code"`
	IsEnabled         bool   `json:"is_enabled"`
	IsLockedOut       bool   `json:"is_locked_out"`
}

// Session is the client's view of who is logged in.
type Session struct {
	User   *UserProfile
	Tokens *TokenPair
}

// IsAuthenticated is true iff both the user and the token pair are present.
func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Tokens != nil
}

// Grant is a successful authenticate or refresh response.
type Grant struct {
	AccessToken                string
	RefreshToken               string
	AccessTokenLifetimeMinutes int
	RefreshTokenLifetimeHours  int
	// User is only present on authenticate.
	User *UserProfile
}

// TokenPair converts the grant into a TokenPair issued at issuedAt.
func (g *Grant) TokenPair(issuedAt time.Time) TokenPair {
	return NewTokenPair(g.AccessToken, g.RefreshToken, issuedAt, g.AccessTokenLifetimeMinutes)
}

// Credentials are what the user types to log in.
type Credentials struct {
	Username string
	Password string //nolint:gosec // forwarded to the remote authority, never stored
}
