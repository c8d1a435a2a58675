// Package http provides the presentation API for the wallet session: login, logout,
// refresh and the session guard used by every authenticated route.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/httputil"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	"github.com/allisson/fxwallet/internal/session/http/dto"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
	customValidation "github.com/allisson/fxwallet/internal/validation"
)

// SessionHandler handles HTTP requests for the session lifecycle.
type SessionHandler struct {
	sessionUseCase sessionUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessionUseCase sessionUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler authenticates against the remote authority.
// POST /v1/session - Returns 200 OK with the session view.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.sessionUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session, true))
}

// GetHandler returns the current session.
// GET /v1/session - Returns 200 OK whether or not a user is logged in.
func (h *SessionHandler) GetHandler(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapSessionToResponse(h.sessionUseCase.Current(), h.sessionUseCase.Ready()))
}

// RefreshHandler forces a token refresh. A failed refresh ends the session.
// POST /v1/session/refresh - Returns 200 OK with the new session view.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	if !h.sessionUseCase.Refresh(c.Request.Context()) {
		httputil.HandleErrorGin(c, sessionDomain.ErrSessionEnded, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(h.sessionUseCase.Current(), true))
}

// LogoutHandler ends the session. Logging out never fails.
// DELETE /v1/session - Returns 204 No Content.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	h.sessionUseCase.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}
