package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/servibook/servibook/internal/domain"
)

// MemoryBookingRepository implements BookingRepository with an in-memory map.
// Intended for tests and local development.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
}

// NewMemoryBookingRepository creates a new MemoryBookingRepository
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneBooking(booking)
	r.bookings[booking.ID] = clone
	return nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok || booking.DelFlag {
		return nil, domain.ErrBookingNotFound
	}

	return cloneBooking(booking), nil
}

func (r *MemoryBookingRepository) List(_ context.Context, filter BookingFilter, limit, offset int) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []*domain.Booking
	for _, booking := range r.bookings {
		if booking.DelFlag {
			continue
		}
		if filter.UserID != "" && booking.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		bookings = append(bookings, cloneBooking(booking))
	}

	sortBookings(bookings)
	return paginate(bookings, limit, offset), nil
}

func (r *MemoryBookingRepository) Update(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.bookings[booking.ID]
	if !ok || existing.DelFlag {
		return domain.ErrBookingNotFound
	}

	r.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *MemoryBookingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok || booking.DelFlag {
		return domain.ErrBookingNotFound
	}

	booking.SoftDelete()
	return nil
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	clone := *b
	if b.AdminID != nil {
		adminID := *b.AdminID
		clone.AdminID = &adminID
	}
	if b.Price != nil {
		price := *b.Price
		clone.Price = &price
	}
	return &clone
}

func sortBookings(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

// Ensure MemoryBookingRepository implements BookingRepository
var _ BookingRepository = (*MemoryBookingRepository)(nil)
