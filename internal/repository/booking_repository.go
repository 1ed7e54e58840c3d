package repository

import (
	"context"

	"github.com/servibook/servibook/internal/domain"
)

// BookingFilter narrows List results. Zero values mean no filtering.
type BookingFilter struct {
	UserID string
	Status domain.BookingStatus
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// Create creates a new booking record
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by its ID
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// List retrieves bookings matching the filter
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*domain.Booking, error)

	// Update updates an existing booking
	Update(ctx context.Context, booking *domain.Booking) error

	// Delete soft-deletes a booking by its ID
	Delete(ctx context.Context, id string) error
}
