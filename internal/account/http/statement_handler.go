package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/account/http/dto"
	accountUseCase "github.com/allisson/fxwallet/internal/account/usecase"
	"github.com/allisson/fxwallet/internal/httputil"
)

// StatementHandler handles HTTP requests for account statements.
type StatementHandler struct {
	accountUseCase accountUseCase.AccountUseCase
	logger         *slog.Logger
}

// NewStatementHandler creates a new statement handler.
func NewStatementHandler(accountUseCase accountUseCase.AccountUseCase, logger *slog.Logger) *StatementHandler {
	return &StatementHandler{
		accountUseCase: accountUseCase,
		logger:         logger,
	}
}

// GetHandler returns the statement of one account.
// GET /v1/statement?account_id=&currency=&start_date=&end_date=
func (h *StatementHandler) GetHandler(c *gin.Context) {
	var req dto.StatementRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	statement, err := h.accountUseCase.Statement(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStatementToResponse(statement))
}
