package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/middleware"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

// NotificationHandler handles notification HTTP requests
type NotificationHandler struct {
	notifications service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List handles GET /notifications with an optional unread=true filter
func (h *NotificationHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notifications.List(c.Request.Context(), middleware.UserID(c), unreadOnly, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, notifications)
}

// MarkRead handles POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notifications.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	response.Success(c, gin.H{"read": true})
}
