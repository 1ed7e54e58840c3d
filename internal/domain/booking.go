package domain

import (
	"math"
	"time"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "PENDING"
	BookingStatusAccepted BookingStatus = "ACCEPTED"
	BookingStatusRejected BookingStatus = "REJECTED"
)

// IsValid reports whether the status is a known lifecycle state
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected:
		return true
	}
	return false
}

// Booking is a request by a user for a catalog service. It starts PENDING
// and moves to ACCEPTED or REJECTED when an admin reviews it. An admin may
// change their mind, so reviewed bookings can be reviewed again.
type Booking struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	ServiceID string        `json:"service_id"`
	AdminID   *string       `json:"admin_id,omitempty"`
	Status    BookingStatus `json:"status"`
	Price     *float64      `json:"price,omitempty"`
	DelFlag   bool          `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewBooking creates a booking in the PENDING state
func NewBooking(id, userID, serviceID string) (*Booking, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if serviceID == "" {
		return nil, ErrInvalidServiceID
	}

	now := time.Now()
	return &Booking{
		ID:        id,
		UserID:    userID,
		ServiceID: serviceID,
		Status:    BookingStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Approve marks the booking as accepted by the given admin
func (b *Booking) Approve(adminID string) error {
	if adminID == "" {
		return ErrInvalidAdmin
	}
	b.Status = BookingStatusAccepted
	b.AdminID = &adminID
	b.UpdatedAt = time.Now()
	return nil
}

// Reject marks the booking as rejected by the given admin
func (b *Booking) Reject(adminID string) error {
	if adminID == "" {
		return ErrInvalidAdmin
	}
	b.Status = BookingStatusRejected
	b.AdminID = &adminID
	b.UpdatedAt = time.Now()
	return nil
}

// AssignPrice sets the amount the user will be charged
func (b *Booking) AssignPrice(price float64) error {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	b.Price = &price
	b.UpdatedAt = time.Now()
	return nil
}

// IsAccepted reports whether the booking has been accepted by an admin
func (b *Booking) IsAccepted() bool {
	return b.Status == BookingStatusAccepted
}

// IsPayable reports whether a payment may be initialized for the booking
func (b *Booking) IsPayable() bool {
	return b.Status == BookingStatusAccepted && b.Price != nil && *b.Price > 0
}

// SoftDelete marks the booking as deleted without removing the row
func (b *Booking) SoftDelete() {
	b.DelFlag = true
	b.UpdatedAt = time.Now()
}
