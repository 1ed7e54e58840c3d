package domain

import "time"

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusSuccess  PaymentStatus = "SUCCESS"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Payment records a charge attempt against an accepted booking. At most one
// payment row exists per booking, enforced by a unique index on booking_id.
type Payment struct {
	ID        string        `json:"id"`
	BookingID string        `json:"booking_id"`
	Amount    float64       `json:"amount"`
	Status    PaymentStatus `json:"status"`
	Reference string        `json:"reference"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewPayment creates a payment in the PENDING state
func NewPayment(id, bookingID string, amount float64, reference string) (*Payment, error) {
	if bookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if amount <= 0 {
		return nil, ErrInvalidBookingPrice
	}

	now := time.Now()
	return &Payment{
		ID:        id,
		BookingID: bookingID,
		Amount:    amount,
		Status:    PaymentStatusPending,
		Reference: reference,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// MarkSuccess records a confirmed settlement
func (p *Payment) MarkSuccess(paidAt time.Time) {
	p.Status = PaymentStatusSuccess
	p.PaidAt = &paidAt
	p.UpdatedAt = time.Now()
}

// MarkFailed records a failed charge attempt
func (p *Payment) MarkFailed() {
	p.Status = PaymentStatusFailed
	p.UpdatedAt = time.Now()
}

// MarkRefunded records a refund of a settled payment
func (p *Payment) MarkRefunded() {
	p.Status = PaymentStatusRefunded
	p.UpdatedAt = time.Now()
}

// IsSettled reports whether the payment has already been confirmed
func (p *Payment) IsSettled() bool {
	return p.Status == PaymentStatusSuccess
}
