package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/servibook/servibook/internal/domain"
)

// MemoryNotificationRepository implements NotificationRepository with an
// in-memory map. Intended for tests and local development.
type MemoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications map[string]*domain.Notification
}

// NewMemoryNotificationRepository creates a new MemoryNotificationRepository
func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{
		notifications: make(map[string]*domain.Notification),
	}
}

func (r *MemoryNotificationRepository) Create(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *n
	r.notifications[n.ID] = &clone
	return nil
}

func (r *MemoryNotificationRepository) GetByUserID(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var notifications []*domain.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		clone := *n
		notifications = append(notifications, &clone)
	}

	sort.Slice(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return paginate(notifications, limit, offset), nil
}

func (r *MemoryNotificationRepository) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return domain.ErrNotificationNotFound
	}

	n.MarkRead()
	return nil
}

// Ensure MemoryNotificationRepository implements NotificationRepository
var _ NotificationRepository = (*MemoryNotificationRepository)(nil)
