package domain

import "time"

// Notification is an in-app message delivered to a user
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNotification creates an unread notification
func NewNotification(id, userID, message string) (*Notification, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	now := time.Now()
	return &Notification{
		ID:        id,
		UserID:    userID,
		Message:   message,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	n.Read = true
	n.UpdatedAt = time.Now()
}
