package repository

import (
	"context"

	"github.com/servibook/servibook/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user record
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by its ID
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// Update updates an existing user
	Update(ctx context.Context, user *domain.User) error

	// Delete soft-deletes a user by its ID
	Delete(ctx context.Context, id string) error
}
