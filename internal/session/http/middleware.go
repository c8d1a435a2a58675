package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/fxwallet/internal/errors"
	"github.com/allisson/fxwallet/internal/httputil"
	sessionDomain "github.com/allisson/fxwallet/internal/session/domain"
	sessionUseCase "github.com/allisson/fxwallet/internal/session/usecase"
)

// userKey is a context key type for storing the logged-in user.
type userKey struct{}

// WithUser stores the logged-in user in the context.
func WithUser(ctx context.Context, user *sessionDomain.UserProfile) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the logged-in user stored by RequireSession.
func GetUser(ctx context.Context) (*sessionDomain.UserProfile, bool) {
	user, ok := ctx.Value(userKey{}).(*sessionDomain.UserProfile)
	return user, ok
}

// RequireSession guards the authenticated routes.
//
// Until session restore completes the route answers 503 so a client never mistakes
// a restore in progress for a logout. Without a session it answers 401.
func RequireSession(sessions sessionUseCase.SessionUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessions.Ready() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusServiceUnavailable, httputil.ErrorResponse{
				Error:   "session_restoring",
				Message: "The session is being restored. Please retry shortly.",
			})
			c.Abort()
			return
		}

		session := sessions.Current()
		if !session.IsAuthenticated() {
			logger.Debug("session required", slog.String("path", c.FullPath()))
			httputil.HandleErrorGin(c, apperrors.Wrap(apperrors.ErrUnauthorized, "no active session"), logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), session.User))
		c.Next()
	}
}
