package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
)

func TestLoginRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request LoginRequest
		wantErr bool
	}{
		{name: "valid", request: LoginRequest{Username: "jdoe", Password: "pw"}},
		{name: "missing username", request: LoginRequest{Password: "pw"}, wantErr: true},
		{name: "blank username", request: LoginRequest{Username: "   ", Password: "pw"}, wantErr: true},
		{name: "missing password", request: LoginRequest{Username: "jdoe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMapSessionToResponse(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		response := MapSessionToResponse(sessionDomain.Session{}, true)

		assert.Equal(t, SessionResponse{Ready: true}, response)
	})

	t.Run("Authenticated", func(t *testing.T) {
		issuedAt := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
		tokens := sessionDomain.NewTokenPair("access", "refresh", issuedAt, 60)
		session := sessionDomain.Session{
			User:   &sessionDomain.UserProfile{UserName: "jdoe", OrganizationID: "org-1"},
			Tokens: &tokens,
		}

		response := MapSessionToResponse(session, true)

		assert.True(t, response.Authenticated)
		assert.Equal(t, issuedAt.Add(time.Hour), *response.ExpiresAt)
		assert.Equal(t, "jdoe", response.User.UserName)
		assert.Equal(t, "org-1", response.User.OrganizationID)
	})
}
