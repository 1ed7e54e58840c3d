package repository

import (
	"context"

	"github.com/servibook/servibook/internal/domain"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// Create creates a new payment record. Returns
	// domain.ErrPaymentAlreadyExists when the booking already has one.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by its ID
	GetByID(ctx context.Context, id string) (*domain.Payment, error)

	// GetByBookingID retrieves the payment for a booking
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)

	// GetByReference retrieves a payment by its gateway reference
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)

	// List retrieves payments, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.Payment, error)

	// Update updates an existing payment
	Update(ctx context.Context, payment *domain.Payment) error

	// ConfirmWithBooking marks the payment as settled and re-approves its
	// booking in a single transaction, so a reader never sees one without
	// the other.
	ConfirmWithBooking(ctx context.Context, payment *domain.Payment, booking *domain.Booking) error
}
