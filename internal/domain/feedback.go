package domain

import (
	"strings"
	"time"
)

// Feedback is a rating and comment a user leaves for a service
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ServiceID string    `json:"service_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	DelFlag   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewFeedback creates feedback with a rating between 1 and 5
func NewFeedback(id, userID, serviceID string, rating int, comment string) (*Feedback, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if serviceID == "" {
		return nil, ErrInvalidServiceID
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	now := time.Now()
	return &Feedback{
		ID:        id,
		UserID:    userID,
		ServiceID: serviceID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SoftDelete marks the feedback as deleted without removing the row
func (f *Feedback) SoftDelete() {
	f.DelFlag = true
	f.UpdatedAt = time.Now()
}
