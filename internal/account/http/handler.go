// Package http provides the presentation API for account balances.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/account/http/dto"
	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
	"github.com/allisson/fxwallet/internal/httputil"
)

// BalanceHandler handles HTTP requests for account balances.
type BalanceHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewBalanceHandler creates a new balance handler.
func NewBalanceHandler(accountUseCase accountUseCase.AccountUseCase, logger *slog.Logger) *BalanceHandler {
	return &BalanceHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// ListHandler lists the balances of the logged-in organization.
// GET /v1/balances
func (h *BalanceHandler) ListHandler(c *gin.Context) {
	balances, err := h.accountUseCase.Balances(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapBalancesToResponse(balances))
}
