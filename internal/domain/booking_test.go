package domain

import (
	"math"
	"testing"
)

func TestNewBooking(t *testing.T) {
	booking, err := NewBooking("b1", "u1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != BookingStatusPending {
		t.Errorf("expected PENDING, got %s", booking.Status)
	}
	if booking.AdminID != nil || booking.Price != nil {
		t.Error("new booking should have no admin or price")
	}
}

func TestNewBookingValidation(t *testing.T) {
	if _, err := NewBooking("b1", "", "s1"); err != ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := NewBooking("b1", "u1", ""); err != ErrInvalidServiceID {
		t.Errorf("expected ErrInvalidServiceID, got %v", err)
	}
}

func TestBookingApproveReject(t *testing.T) {
	booking, _ := NewBooking("b1", "u1", "s1")

	if err := booking.Approve("a1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != BookingStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", booking.Status)
	}
	if booking.AdminID == nil || *booking.AdminID != "a1" {
		t.Error("admin id not recorded")
	}

	// A reviewed booking may be reviewed again
	if err := booking.Reject("a2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Status != BookingStatusRejected {
		t.Errorf("expected REJECTED, got %s", booking.Status)
	}
	if *booking.AdminID != "a2" {
		t.Error("admin id not reassigned")
	}

	if err := booking.Approve(""); err != ErrInvalidAdmin {
		t.Errorf("expected ErrInvalidAdmin, got %v", err)
	}
}

func TestBookingAssignPrice(t *testing.T) {
	booking, _ := NewBooking("b1", "u1", "s1")

	for _, price := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := booking.AssignPrice(price); err != ErrInvalidPrice {
			t.Errorf("price %v: expected ErrInvalidPrice, got %v", price, err)
		}
	}

	if err := booking.AssignPrice(1000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Price == nil || *booking.Price != 1000 {
		t.Error("price not assigned")
	}
}

func TestBookingIsPayable(t *testing.T) {
	booking, _ := NewBooking("b1", "u1", "s1")
	if booking.IsPayable() {
		t.Error("pending unpriced booking should not be payable")
	}

	booking.Approve("a1")
	if booking.IsPayable() {
		t.Error("unpriced booking should not be payable")
	}

	booking.AssignPrice(500)
	if !booking.IsPayable() {
		t.Error("accepted priced booking should be payable")
	}
}

func TestBookingSoftDelete(t *testing.T) {
	booking, _ := NewBooking("b1", "u1", "s1")
	booking.SoftDelete()
	if !booking.DelFlag {
		t.Error("del flag not set")
	}
}

func TestBookingStatusIsValid(t *testing.T) {
	for _, status := range []BookingStatus{BookingStatusPending, BookingStatusAccepted, BookingStatusRejected} {
		if !status.IsValid() {
			t.Errorf("%s should be valid", status)
		}
	}
	if BookingStatus("CANCELLED").IsValid() {
		t.Error("unknown status should be invalid")
	}
}
