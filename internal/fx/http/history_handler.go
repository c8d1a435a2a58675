package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/fx/http/dto"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/httputil"
)

// HistoryHandler handles HTTP requests for booked FX deals.
type HistoryHandler struct {
	historyUseCase fxUseCase.HistoryUseCase
	logger         *slog.Logger
}

// NewHistoryHandler creates a new deal history handler.
func NewHistoryHandler(historyUseCase fxUseCase.HistoryUseCase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		historyUseCase: historyUseCase,
		logger:         logger,
	}
}

// ListHandler lists booked deals, most recently booked first.
// GET /v1/fx/deals?page=&page_size=
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
