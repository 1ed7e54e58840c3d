package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/servibook/servibook/internal/domain"
)

// MemoryPaymentRepository implements PaymentRepository with an in-memory map.
// Intended for tests and local development. It enforces the one payment per
// booking rule the same way the unique index does in PostgreSQL.
type MemoryPaymentRepository struct {
	mu          sync.Mutex
	payments    map[string]*domain.Payment
	byBooking   map[string]string
	byReference map[string]string
	bookings    *MemoryBookingRepository
}

// NewMemoryPaymentRepository creates a new MemoryPaymentRepository. The
// booking repository is needed so ConfirmWithBooking can update both records
// together.
func NewMemoryPaymentRepository(bookings *MemoryBookingRepository) *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments:    make(map[string]*domain.Payment),
		byBooking:   make(map[string]string),
		byReference: make(map[string]string),
		bookings:    bookings,
	}
}

func (r *MemoryPaymentRepository) Create(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byBooking[payment.BookingID]; ok {
		return domain.ErrPaymentAlreadyExists
	}

	clone := clonePayment(payment)
	r.payments[payment.ID] = clone
	r.byBooking[payment.BookingID] = payment.ID
	if payment.Reference != "" {
		r.byReference[payment.Reference] = payment.ID
	}
	return nil
}

func (r *MemoryPaymentRepository) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(payment), nil
}

func (r *MemoryPaymentRepository) GetByBookingID(_ context.Context, bookingID string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byBooking[bookingID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(r.payments[id]), nil
}

func (r *MemoryPaymentRepository) GetByReference(_ context.Context, reference string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byReference[reference]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return clonePayment(r.payments[id]), nil
}

func (r *MemoryPaymentRepository) List(_ context.Context, limit, offset int) ([]*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var payments []*domain.Payment
	for _, payment := range r.payments {
		payments = append(payments, clonePayment(payment))
	}

	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})

	return paginate(payments, limit, offset), nil
}

func (r *MemoryPaymentRepository) Update(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateLocked(payment)
}

func (r *MemoryPaymentRepository) ConfirmWithBooking(ctx context.Context, payment *domain.Payment, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.payments[payment.ID]
	if !ok {
		return domain.ErrPaymentNotFound
	}

	if err := r.updateLocked(payment); err != nil {
		return err
	}
	if err := r.bookings.Update(ctx, booking); err != nil {
		// Both records change together or not at all, like the SQL transaction
		if prev.Reference != payment.Reference {
			delete(r.byReference, payment.Reference)
			if prev.Reference != "" {
				r.byReference[prev.Reference] = payment.ID
			}
		}
		r.payments[payment.ID] = prev
		return err
	}
	return nil
}

func (r *MemoryPaymentRepository) updateLocked(payment *domain.Payment) error {
	existing, ok := r.payments[payment.ID]
	if !ok {
		return domain.ErrPaymentNotFound
	}

	if existing.Reference != payment.Reference {
		delete(r.byReference, existing.Reference)
		if payment.Reference != "" {
			r.byReference[payment.Reference] = payment.ID
		}
	}

	r.payments[payment.ID] = clonePayment(payment)
	return nil
}

func clonePayment(p *domain.Payment) *domain.Payment {
	clone := *p
	if p.PaidAt != nil {
		paidAt := *p.PaidAt
		clone.PaidAt = &paidAt
	}
	return &clone
}

// Ensure MemoryPaymentRepository implements PaymentRepository
var _ PaymentRepository = (*MemoryPaymentRepository)(nil)
