// Package http provides the presentation API for the FX deal workflow.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/fx/http/dto"
	fxUseCase "github.com/allisson/fxwallet/internal/fx/usecase"
	"github.com/allisson/fxwallet/internal/httputil"
)

// DealHandler handles HTTP requests for the FX deal workflow. Every successful action
// answers with the resulting workflow state.
type DealHandler struct {
	dealUseCase fxUseCase.DealUseCase
	logger      *slog.Logger
}

// NewDealHandler creates a new deal handler.
func NewDealHandler(dealUseCase fxUseCase.DealUseCase, logger *slog.Logger) *DealHandler {
	return &DealHandler{
		dealUseCase: dealUseCase,
		logger:      logger,
	}
}

// GetHandler returns the workflow state, countdown included.
// GET /v1/fx/deal
func (h *DealHandler) GetHandler(c *gin.Context) {
	h.respond(c)
}

// QuoteHandler requests a quote.
// POST /v1/fx/deal/quote - Valid only in the form step.
func (h *DealHandler) QuoteHandler(c *gin.Context) {
	var req dto.QuoteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.dealUseCase.RequestQuote(c.Request.Context(), req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// BookHandler books the live quote.
// POST /v1/fx/deal/book - Valid only in the quote step.
func (h *DealHandler) BookHandler(c *gin.Context) {
	if err := h.dealUseCase.BookDeal(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// CancelHandler discards the live quote.
// POST /v1/fx/deal/cancel - Valid only in the quote step.
func (h *DealHandler) CancelHandler(c *gin.Context) {
	if err := h.dealUseCase.Cancel(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// ResetHandler starts a fresh deal.
// POST /v1/fx/deal/reset - Valid in the form, success and expired steps.
func (h *DealHandler) ResetHandler(c *gin.Context) {
	if err := h.dealUseCase.Reset(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// CurrenciesHandler lists the buy and sell currencies.
// GET /v1/fx/currencies
func (h *DealHandler) CurrenciesHandler(c *gin.Context) {
	lists, err := h.dealUseCase.Currencies(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CurrencyListsResponse{Buy: lists.Buy, Sell: lists.Sell})
}

func (h *DealHandler) respond(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapDealStateToResponse(h.dealUseCase.State()))
}
