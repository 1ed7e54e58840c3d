package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/middleware"
	"github.com/servibook/servibook/internal/repository"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

// BookingHandler handles booking lifecycle HTTP requests
type BookingHandler struct {
	bookings service.BookingService
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, booking)
}

// Get handles GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookings.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, booking)
}

// List handles GET /bookings with optional status and user_id filters
func (h *BookingHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	filter := repository.BookingFilter{
		UserID: c.Query("user_id"),
		Status: domain.BookingStatus(c.Query("status")),
	}

	bookings, err := h.bookings.List(c.Request.Context(), filter, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, bookings)
}

// Update handles PATCH /bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, booking)
}

// Approve handles POST /bookings/:id/approve
func (h *BookingHandler) Approve(c *gin.Context) {
	booking, err := h.bookings.Approve(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, booking)
}

// Reject handles POST /bookings/:id/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	booking, err := h.bookings.Reject(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, booking)
}

// AssignPrice handles POST /bookings/:id/price
func (h *BookingHandler) AssignPrice(c *gin.Context) {
	var req dto.AssignPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	booking, err := h.bookings.AssignPrice(c.Request.Context(), c.Param("id"), req.Price)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, booking)
}

// Delete handles DELETE /bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookings.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
