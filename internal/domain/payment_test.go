package domain

import (
	"testing"
	"time"
)

func TestNewPayment(t *testing.T) {
	payment, err := NewPayment("p1", "b1", 1000, "ref-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Status != PaymentStatusPending {
		t.Errorf("expected PENDING, got %s", payment.Status)
	}
	if payment.PaidAt != nil {
		t.Error("new payment should have no paid_at")
	}
}

func TestNewPaymentValidation(t *testing.T) {
	if _, err := NewPayment("p1", "", 1000, "ref-1"); err != ErrInvalidBookingID {
		t.Errorf("expected ErrInvalidBookingID, got %v", err)
	}
	if _, err := NewPayment("p1", "b1", 0, "ref-1"); err != ErrInvalidBookingPrice {
		t.Errorf("expected ErrInvalidBookingPrice, got %v", err)
	}
	if _, err := NewPayment("p1", "b1", -5, "ref-1"); err != ErrInvalidBookingPrice {
		t.Errorf("expected ErrInvalidBookingPrice, got %v", err)
	}
}

func TestPaymentTransitions(t *testing.T) {
	payment, _ := NewPayment("p1", "b1", 1000, "ref-1")

	paidAt := time.Now()
	payment.MarkSuccess(paidAt)
	if !payment.IsSettled() {
		t.Error("payment should be settled")
	}
	if payment.PaidAt == nil || !payment.PaidAt.Equal(paidAt) {
		t.Error("paid_at not recorded")
	}

	payment.MarkRefunded()
	if payment.Status != PaymentStatusRefunded {
		t.Errorf("expected REFUNDED, got %s", payment.Status)
	}

	payment2, _ := NewPayment("p2", "b2", 500, "ref-2")
	payment2.MarkFailed()
	if payment2.Status != PaymentStatusFailed {
		t.Errorf("expected FAILED, got %s", payment2.Status)
	}
	if payment2.IsSettled() {
		t.Error("failed payment should not be settled")
	}
}
