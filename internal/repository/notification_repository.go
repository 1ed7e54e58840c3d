package repository

import (
	"context"

	"github.com/servibook/servibook/internal/domain"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create creates a new notification record
	Create(ctx context.Context, n *domain.Notification) error

	// GetByUserID retrieves a user's notifications, newest first, optionally
	// restricted to unread ones
	GetByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) error
}
