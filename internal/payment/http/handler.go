// Package http provides the presentation API for the instant payment workflow.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/fxwallet/internal/httputil"
	"github.com/allisson/fxwallet/internal/payment/http/dto"
	paymentUseCase "github.com/allisson/fxwallet/internal/payment/usecase"
)

// PaymentHandler handles HTTP requests for the instant payment workflow. Every
// successful action answers with the resulting workflow state.
type PaymentHandler struct {
	paymentUseCase paymentUseCase.PaymentUseCase
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentUseCase paymentUseCase.PaymentUseCase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		logger:         logger,
	}
}

// GetHandler returns the workflow state.
// GET /v1/payments/instant
func (h *PaymentHandler) GetHandler(c *gin.Context) {
	h.respond(c)
}

// LoadBalancesHandler refreshes the currencies the user can pay in.
// POST /v1/payments/instant/balances
func (h *PaymentHandler) LoadBalancesHandler(c *gin.Context) {
	if _, err := h.paymentUseCase.LoadBalances(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// ReviewHandler validates the form and shows it for review.
// POST /v1/payments/instant/review - Valid only in the form step.
func (h *PaymentHandler) ReviewHandler(c *gin.Context) {
	var req dto.PaymentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.paymentUseCase.Review(req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// BackHandler returns from review to the form.
// POST /v1/payments/instant/back
func (h *PaymentHandler) BackHandler(c *gin.Context) {
	if err := h.paymentUseCase.Back(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// DraftHandler creates the server draft.
// POST /v1/payments/instant/draft - Valid in the form and review steps.
func (h *PaymentHandler) DraftHandler(c *gin.Context) {
	var req dto.PaymentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.paymentUseCase.CreateDraft(c.Request.Context(), req.ToDomain()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// ConfirmHandler posts the draft.
// POST /v1/payments/instant/confirm - Valid only in the confirm step.
func (h *PaymentHandler) ConfirmHandler(c *gin.Context) {
	if err := h.paymentUseCase.Confirm(c.Request.Context()); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

// ResetHandler clears the workflow.
// POST /v1/payments/instant/reset - Not valid while a call is in flight.
func (h *PaymentHandler) ResetHandler(c *gin.Context) {
	if err := h.paymentUseCase.Reset(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.respond(c)
}

func (h *PaymentHandler) respond(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MapPaymentStateToResponse(h.paymentUseCase.State()))
}
