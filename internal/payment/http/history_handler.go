package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/httputil"
	"github.com/allisson/fxwallet/internal/payment/http/dto"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

// HistoryHandler handles HTTP requests for past instant payments.
type HistoryHandler struct {
	historyUseCase paymentUseCase.HistoryUseCase
	logger         *slog.Logger
}

// NewHistoryHandler creates a new payment history handler.
func NewHistoryHandler(historyUseCase paymentUseCase.HistoryUseCase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyUseCase: historyUseCase,
		logger:         logger,
	}
}

// ListHandler lists instant payments by value date, newest first.
// GET /v1/payments/history?start_date=&end_date=&page=&page_size=
func (h *HistoryHandler) ListHandler(c *gin.Context) {
	var req dto.HistoryRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	page, err := h.historyUseCase.Search(c.Request.Context(), req.ToDomain())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapHistoryToResponse(page))
}
