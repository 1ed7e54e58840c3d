package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/repository"
)

type bookingFixture struct {
	svc           BookingService
	bookingRepo   *repository.MemoryBookingRepository
	userRepo      *repository.MemoryUserRepository
	serviceRepo   *repository.MemoryServiceRepository
	notifications NotificationService
	notifRepo     *repository.MemoryNotificationRepository
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		bookingRepo: repository.NewMemoryBookingRepository(),
		userRepo:    repository.NewMemoryUserRepository(),
		serviceRepo: repository.NewMemoryServiceRepository(),
		notifRepo:   repository.NewMemoryNotificationRepository(),
	}
	f.notifications = NewNotificationService(f.notifRepo)
	f.svc = NewBookingService(f.bookingRepo, f.userRepo, f.serviceRepo, f.notifications)
	return f
}

func (f *bookingFixture) seedUser(t *testing.T, id string, role domain.Role) {
	t.Helper()
	user := &domain.User{
		ID:        id,
		Name:      "user " + id,
		Email:     id + "@example.com",
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))
}

func (f *bookingFixture) seedService(t *testing.T, id string) {
	t.Helper()
	svc, err := domain.NewService(id, "service "+id, "")
	require.NoError(t, err)
	require.NoError(t, f.serviceRepo.Create(context.Background(), svc))
}

func (f *bookingFixture) seedBooking(t *testing.T) *domain.Booking {
	t.Helper()
	f.seedUser(t, "u1", domain.RoleUser)
	f.seedService(t, "s1")
	booking, err := f.svc.Create(context.Background(), "u1", &dto.CreateBookingRequest{ServiceID: "s1"})
	require.NoError(t, err)
	return booking
}

func TestBookingService_Create(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)

	assert.Equal(t, domain.BookingStatusPending, booking.Status)
	assert.Equal(t, "u1", booking.UserID)

	// Notification is written outside the request path
	require.Eventually(t, func() bool {
		notifications, err := f.notifRepo.GetByUserID(context.Background(), "u1", false, 10, 0)
		return err == nil && len(notifications) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestBookingService_CreateUnknownUser(t *testing.T) {
	f := newBookingFixture(t)
	f.seedService(t, "s1")

	_, err := f.svc.Create(context.Background(), "missing", &dto.CreateBookingRequest{ServiceID: "s1"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestBookingService_CreateUnknownService(t *testing.T) {
	f := newBookingFixture(t)
	f.seedUser(t, "u1", domain.RoleUser)

	_, err := f.svc.Create(context.Background(), "u1", &dto.CreateBookingRequest{ServiceID: "missing"})
	assert.ErrorIs(t, err, domain.ErrServiceNotFound)
}

func TestBookingService_Approve(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)
	f.seedUser(t, "a1", domain.RoleAdmin)

	approved, err := f.svc.Approve(context.Background(), booking.ID, "a1")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusAccepted, approved.Status)
	require.NotNil(t, approved.AdminID)
	assert.Equal(t, "a1", *approved.AdminID)
}

func TestBookingService_ApproveByNonAdmin(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)
	f.seedUser(t, "u2", domain.RoleUser)

	_, err := f.svc.Approve(context.Background(), booking.ID, "u2")
	assert.ErrorIs(t, err, domain.ErrInvalidAdmin)

	// Booking stays PENDING
	got, err := f.svc.Get(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, got.Status)
}

func TestBookingService_ApproveByUnknownAdmin(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)

	_, err := f.svc.Approve(context.Background(), booking.ID, "ghost")
	assert.ErrorIs(t, err, domain.ErrInvalidAdmin)
}

func TestBookingService_RejectThenApprove(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)
	f.seedUser(t, "a1", domain.RoleAdmin)
	f.seedUser(t, "a2", domain.RoleAdmin)

	_, err := f.svc.Reject(context.Background(), booking.ID, "a1")
	require.NoError(t, err)

	// A second review overrides the first
	approved, err := f.svc.Approve(context.Background(), booking.ID, "a2")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusAccepted, approved.Status)
	assert.Equal(t, "a2", *approved.AdminID)
}

func TestBookingService_AssignPrice(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)

	priced, err := f.svc.AssignPrice(context.Background(), booking.ID, 1500)
	require.NoError(t, err)
	require.NotNil(t, priced.Price)
	assert.Equal(t, 1500.0, *priced.Price)

	_, err = f.svc.AssignPrice(context.Background(), booking.ID, -5)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestBookingService_Update(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)
	f.seedService(t, "s2")

	serviceID := "s2"
	updated, err := f.svc.Update(context.Background(), booking.ID, &dto.UpdateBookingRequest{ServiceID: &serviceID})
	require.NoError(t, err)
	assert.Equal(t, "s2", updated.ServiceID)

	bad := "CANCELLED"
	_, err = f.svc.Update(context.Background(), booking.ID, &dto.UpdateBookingRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestBookingService_DeleteThenGet(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)

	require.NoError(t, f.svc.Delete(context.Background(), booking.ID))

	_, err := f.svc.Get(context.Background(), booking.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)

	// Deleting again is NotFound, matching read visibility
	assert.ErrorIs(t, f.svc.Delete(context.Background(), booking.ID), domain.ErrBookingNotFound)
}

func TestBookingService_ListFilters(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.seedBooking(t)
	f.seedUser(t, "a1", domain.RoleAdmin)
	f.seedUser(t, "u2", domain.RoleUser)

	_, err := f.svc.Create(context.Background(), "u2", &dto.CreateBookingRequest{ServiceID: "s1"})
	require.NoError(t, err)

	_, err = f.svc.Approve(context.Background(), booking.ID, "a1")
	require.NoError(t, err)

	accepted, err := f.svc.List(context.Background(), repository.BookingFilter{Status: domain.BookingStatusAccepted}, 10, 0)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.Equal(t, booking.ID, accepted[0].ID)

	mine, err := f.svc.List(context.Background(), repository.BookingFilter{UserID: "u2"}, 10, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "u2", mine[0].UserID)

	_, err = f.svc.List(context.Background(), repository.BookingFilter{Status: "BOGUS"}, 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}
