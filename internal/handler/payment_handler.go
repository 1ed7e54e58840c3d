package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

// PaymentHandler handles payment workflow HTTP requests
type PaymentHandler struct {
	payments service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Initialize handles POST /payments/initialize
func (h *PaymentHandler) Initialize(c *gin.Context) {
	var req dto.InitializePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.payments.InitializePayment(c.Request.Context(), req.BookingID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, resp)
}

// Confirm handles GET /payments/confirm?reference=...
// This is the callback target users land on after checkout.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		response.BadRequest(c, "reference is required")
		return
	}

	payment, err := h.payments.ConfirmPayment(c.Request.Context(), reference)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, payment)
}

// Get handles GET /payments/:id
func (h *PaymentHandler) Get(c *gin.Context) {
	payment, err := h.payments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, payment)
}

// List handles GET /payments
func (h *PaymentHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	payments, err := h.payments.List(c.Request.Context(), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, payments)
}

// GetByBooking handles GET /bookings/:id/payment
func (h *PaymentHandler) GetByBooking(c *gin.Context) {
	payment, err := h.payments.GetByBookingID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, payment)
}
