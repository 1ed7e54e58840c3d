package repository

import (
	"context"

	"github.com/servibook/servibook/internal/domain"
)

// FeedbackRepository defines the interface for feedback data access
type FeedbackRepository interface {
	// Create creates a new feedback record
	Create(ctx context.Context, fb *domain.Feedback) error

	// GetByID retrieves feedback by its ID
	GetByID(ctx context.Context, id string) (*domain.Feedback, error)

	// GetByServiceID retrieves all feedback for a catalog entry
	GetByServiceID(ctx context.Context, serviceID string, limit, offset int) ([]*domain.Feedback, error)

	// Delete soft-deletes feedback by its ID
	Delete(ctx context.Context, id string) error
}
