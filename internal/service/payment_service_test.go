package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/gateway"
	"github.com/servibook/servibook/internal/repository"
)

type paymentFixture struct {
	svc         PaymentService
	bookings    BookingService
	gw          *gateway.MockGateway
	paymentRepo *repository.MemoryPaymentRepository
	bookingRepo *repository.MemoryBookingRepository
	userRepo    *repository.MemoryUserRepository
	serviceRepo *repository.MemoryServiceRepository
	notifRepo   *repository.MemoryNotificationRepository
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	f := &paymentFixture{
		gw:          gateway.NewMockGateway("test-secret"),
		bookingRepo: repository.NewMemoryBookingRepository(),
		userRepo:    repository.NewMemoryUserRepository(),
		serviceRepo: repository.NewMemoryServiceRepository(),
		notifRepo:   repository.NewMemoryNotificationRepository(),
	}
	f.paymentRepo = repository.NewMemoryPaymentRepository(f.bookingRepo)
	notifications := NewNotificationService(f.notifRepo)
	f.bookings = NewBookingService(f.bookingRepo, f.userRepo, f.serviceRepo, notifications)
	f.svc = NewPaymentService(f.paymentRepo, f.bookingRepo, f.userRepo, f.serviceRepo, f.gw, notifications)
	return f
}

// payableBooking seeds a user, a service, and an accepted booking priced at 2000
func (f *paymentFixture) payableBooking(t *testing.T) *domain.Booking {
	t.Helper()

	user := &domain.User{ID: "u1", Name: "payer", Email: "payer@example.com", Role: domain.RoleUser}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	admin := &domain.User{ID: "a1", Name: "reviewer", Email: "reviewer@example.com", Role: domain.RoleAdmin}
	require.NoError(t, f.userRepo.Create(context.Background(), admin))
	svc, err := domain.NewService("s1", "cleaning", "")
	require.NoError(t, err)
	require.NoError(t, f.serviceRepo.Create(context.Background(), svc))

	booking, err := f.bookings.Create(context.Background(), "u1", &dto.CreateBookingRequest{ServiceID: "s1"})
	require.NoError(t, err)
	_, err = f.bookings.AssignPrice(context.Background(), booking.ID, 2000)
	require.NoError(t, err)
	booking, err = f.bookings.Approve(context.Background(), booking.ID, "a1")
	require.NoError(t, err)
	return booking
}

func TestPaymentService_Initialize(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	resp, err := f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AuthorizationURL)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, 2000.0, resp.Amount)

	payment, err := f.svc.GetByBookingID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Equal(t, resp.Reference, payment.Reference)
}

func TestPaymentService_InitializePreconditions(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.svc.InitializePayment(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	user := &domain.User{ID: "u1", Name: "payer", Email: "payer@example.com", Role: domain.RoleUser}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	admin := &domain.User{ID: "a1", Name: "reviewer", Email: "reviewer@example.com", Role: domain.RoleAdmin}
	require.NoError(t, f.userRepo.Create(context.Background(), admin))
	svc, _ := domain.NewService("s1", "cleaning", "")
	require.NoError(t, f.serviceRepo.Create(context.Background(), svc))

	booking, err := f.bookings.Create(context.Background(), "u1", &dto.CreateBookingRequest{ServiceID: "s1"})
	require.NoError(t, err)

	// Still PENDING; the message names the current status
	_, err = f.svc.InitializePayment(context.Background(), booking.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotAccepted)
	assert.ErrorContains(t, err, string(domain.BookingStatusPending))

	// Accepted but unpriced
	_, err = f.bookings.Approve(context.Background(), booking.ID, "a1")
	require.NoError(t, err)
	_, err = f.svc.InitializePayment(context.Background(), booking.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidBookingPrice)

	// Priced: succeeds once, then conflicts
	_, err = f.bookings.AssignPrice(context.Background(), booking.ID, 500)
	require.NoError(t, err)
	_, err = f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)
	_, err = f.svc.InitializePayment(context.Background(), booking.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentAlreadyExists)
}

func TestPaymentService_InitializeConcurrent(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.InitializePayment(context.Background(), booking.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case domain.IsConflictError(err):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one initialization should win")
	assert.Equal(t, attempts-1, conflicted)
}

func TestPaymentService_InitializeRejectsAnyExistingPayment(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	_, err := f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)

	// A prior attempt blocks re-initialization regardless of its status
	payment, err := f.svc.GetByBookingID(context.Background(), booking.ID)
	require.NoError(t, err)
	payment.MarkFailed()
	require.NoError(t, f.paymentRepo.Update(context.Background(), payment))

	_, err = f.svc.InitializePayment(context.Background(), booking.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentAlreadyExists)
}

func TestPaymentService_InitializeExistingPaymentReportedBeforePrice(t *testing.T) {
	f := newPaymentFixture(t)

	user := &domain.User{ID: "u1", Name: "payer", Email: "payer@example.com", Role: domain.RoleUser}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
	admin := &domain.User{ID: "a1", Name: "reviewer", Email: "reviewer@example.com", Role: domain.RoleAdmin}
	require.NoError(t, f.userRepo.Create(context.Background(), admin))
	svc, _ := domain.NewService("s1", "cleaning", "")
	require.NoError(t, f.serviceRepo.Create(context.Background(), svc))

	booking, err := f.bookings.Create(context.Background(), "u1", &dto.CreateBookingRequest{ServiceID: "s1"})
	require.NoError(t, err)
	_, err = f.bookings.Approve(context.Background(), booking.ID, "a1")
	require.NoError(t, err)

	// Accepted, unpriced, yet already carrying a payment
	payment, err := domain.NewPayment("p1", booking.ID, 750, "ref-1")
	require.NoError(t, err)
	require.NoError(t, f.paymentRepo.Create(context.Background(), payment))

	_, err = f.svc.InitializePayment(context.Background(), booking.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentAlreadyExists)
}

func TestPaymentService_Confirm(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	resp, err := f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)

	payment, err := f.svc.ConfirmPayment(context.Background(), resp.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
	require.NotNil(t, payment.PaidAt)

	got, err := f.bookingRepo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusAccepted, got.Status)
}

func TestPaymentService_ConfirmVerificationFailed(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	resp, err := f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)

	f.gw.SetVerifyStatus("failed")
	_, err = f.svc.ConfirmPayment(context.Background(), resp.Reference)
	assert.ErrorIs(t, err, domain.ErrVerificationFailed)

	// No state change on failed verification
	payment, err := f.svc.GetByBookingID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Nil(t, payment.PaidAt)
}

func TestPaymentService_ConfirmIdempotent(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	resp, err := f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)

	first, err := f.svc.ConfirmPayment(context.Background(), resp.Reference)
	require.NoError(t, err)

	second, err := f.svc.ConfirmPayment(context.Background(), resp.Reference)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.PaymentStatusSuccess, second.Status)
	require.NotNil(t, second.PaidAt)
	assert.True(t, first.PaidAt.Equal(*second.PaidAt))
}

func TestPaymentService_ConfirmNotifiesUser(t *testing.T) {
	f := newPaymentFixture(t)
	booking := f.payableBooking(t)

	resp, err := f.svc.InitializePayment(context.Background(), booking.ID)
	require.NoError(t, err)
	_, err = f.svc.ConfirmPayment(context.Background(), resp.Reference)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		notifications, err := f.notifRepo.GetByUserID(context.Background(), booking.UserID, false, 10, 0)
		if err != nil {
			return false
		}
		for _, n := range notifications {
			if n.Message == "Your payment has been confirmed." {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

func TestPaymentService_WebhookSignature(t *testing.T) {
	f := newPaymentFixture(t)

	body := []byte(`{"event":"charge.success"}`)
	assert.True(t, f.svc.VerifyWebhookSignature(body, f.gw.Sign(body)))
	assert.False(t, f.svc.VerifyWebhookSignature(body, "deadbeef"))
}
