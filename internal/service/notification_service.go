package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/repository"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	// Notify creates an unread notification for a user
	Notify(ctx context.Context, userID, message string) (*domain.Notification, error)
	// List retrieves a user's notifications, newest first, optionally only
	// the unread ones
	List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, userID, message string) (*domain.Notification, error) {
	n, err := domain.NewNotification(uuid.New().String(), userID, message)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, unreadOnly, limit, offset)
}

func (s *notificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}
