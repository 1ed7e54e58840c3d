package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/middleware"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

// FeedbackHandler handles feedback HTTP requests
type FeedbackHandler struct {
	feedback service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedback service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// Create handles POST /feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	fb, err := h.feedback.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, fb)
}

// Get handles GET /feedback/:id
func (h *FeedbackHandler) Get(c *gin.Context) {
	fb, err := h.feedback.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, fb)
}

// ListByService handles GET /services/:id/feedback
func (h *FeedbackHandler) ListByService(c *gin.Context) {
	limit, offset := pagination(c)

	feedback, err := h.feedback.ListByService(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, feedback)
}

// Delete handles DELETE /feedback/:id
func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.feedback.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
