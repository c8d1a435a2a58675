package dto

import (
	"time"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

// SessionResponse is the public view of the session. Tokens are never exposed.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Ready         bool          `json:"ready"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
	User          *UserResponse `json:"user,omitempty"`
}

// UserResponse is the subset of the user profile shown to the client.
type UserResponse struct {
	UserName         string `json:"user_name"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	EmailAddress     string `json:"email_address"`
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	BaseCurrencyCode string `json:"base_currency_code"`
}

// MapSessionToResponse converts a session to its public view.
func MapSessionToResponse(session sessionDomain.Session, ready bool) SessionResponse {
	response := SessionResponse{
		Authenticated: session.IsAuthenticated(),
		Ready:         ready,
	}
	if !response.Authenticated {
		return response
	}

	expiresAt := session.Tokens.ExpiresAt
	response.ExpiresAt = &expiresAt
	response.User = &UserResponse{
		UserName:         session.User.UserName,
		FirstName:        session.User.FirstName,
		LastName:         session.User.LastName,
		EmailAddress:     session.User.EmailAddress,
		OrganizationID:   session.User.OrganizationID,
		OrganizationName: session.User.OrganizationName,
		BaseCurrencyCode: session.User.BaseCurrencyCode,
	}
	return response
}
