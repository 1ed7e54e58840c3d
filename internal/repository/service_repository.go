package repository

import (
	"context"

	"github.com/servibook/servibook/internal/domain"
)

// ServiceRepository defines the interface for catalog data access
type ServiceRepository interface {
	// Create creates a new catalog entry
	Create(ctx context.Context, svc *domain.Service) error

	// GetByID retrieves a catalog entry by its ID
	GetByID(ctx context.Context, id string) (*domain.Service, error)

	// List retrieves all catalog entries
	List(ctx context.Context, limit, offset int) ([]*domain.Service, error)

	// Update updates an existing catalog entry
	Update(ctx context.Context, svc *domain.Service) error

	// Delete soft-deletes a catalog entry by its ID
	Delete(ctx context.Context, id string) error
}
