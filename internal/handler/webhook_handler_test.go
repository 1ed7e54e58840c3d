package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/gateway"
	"github.com/servibook/servibook/internal/repository"
	"github.com/servibook/servibook/internal/service"
)

type webhookFixture struct {
	router      *gin.Engine
	gw          *gateway.MockGateway
	payments    service.PaymentService
	bookings    service.BookingService
	bookingRepo *repository.MemoryBookingRepository
}

// newWebhookFixture wires the handler against real services over in-memory
// storage so confirmations are observable end to end
func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gw := gateway.NewMockGateway("webhook-secret")
	bookingRepo := repository.NewMemoryBookingRepository()
	userRepo := repository.NewMemoryUserRepository()
	serviceRepo := repository.NewMemoryServiceRepository()
	paymentRepo := repository.NewMemoryPaymentRepository(bookingRepo)
	notifications := service.NewNotificationService(repository.NewMemoryNotificationRepository())

	bookings := service.NewBookingService(bookingRepo, userRepo, serviceRepo, notifications)
	payments := service.NewPaymentService(paymentRepo, bookingRepo, userRepo, serviceRepo, gw, notifications)

	ctx := context.Background()
	require.NoError(t, userRepo.Create(ctx, &domain.User{ID: "u1", Name: "payer", Email: "payer@example.com", Role: domain.RoleUser}))
	require.NoError(t, userRepo.Create(ctx, &domain.User{ID: "a1", Name: "reviewer", Email: "reviewer@example.com", Role: domain.RoleAdmin}))
	svc, err := domain.NewService("s1", "cleaning", "")
	require.NoError(t, err)
	require.NoError(t, serviceRepo.Create(ctx, svc))

	router := gin.New()
	router.POST("/webhooks/paystack", NewWebhookHandler(payments).Handle)

	return &webhookFixture{
		router:      router,
		gw:          gw,
		payments:    payments,
		bookings:    bookings,
		bookingRepo: bookingRepo,
	}
}

// initializedPayment creates an accepted, priced booking with a PENDING payment
func (f *webhookFixture) initializedPayment(t *testing.T) *dto.InitializePaymentResponse {
	t.Helper()
	ctx := context.Background()

	booking, err := f.bookings.Create(ctx, "u1", &dto.CreateBookingRequest{ServiceID: "s1"})
	require.NoError(t, err)
	_, err = f.bookings.AssignPrice(ctx, booking.ID, 3000)
	require.NoError(t, err)
	_, err = f.bookings.Approve(ctx, booking.ID, "a1")
	require.NoError(t, err)

	resp, err := f.payments.InitializePayment(ctx, booking.ID)
	require.NoError(t, err)
	return resp
}

func (f *webhookFixture) post(body []byte, signature string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/paystack", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	f.router.ServeHTTP(w, req)
	return w
}

func chargeSuccessBody(reference string) []byte {
	return []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":"%s"}}`, reference))
}

func TestWebhookHandler_ChargeSuccess(t *testing.T) {
	f := newWebhookFixture(t)
	init := f.initializedPayment(t)

	body := chargeSuccessBody(init.Reference)
	w := f.post(body, f.gw.Sign(body))

	assert.Equal(t, http.StatusOK, w.Code)

	payment, err := f.payments.GetByReference(context.Background(), init.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)

	booking, err := f.bookingRepo.GetByID(context.Background(), payment.BookingID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusAccepted, booking.Status)
}

func TestWebhookHandler_BadSignature(t *testing.T) {
	f := newWebhookFixture(t)
	init := f.initializedPayment(t)

	body := chargeSuccessBody(init.Reference)

	w := f.post(body, "0000")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.post(body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Untrusted payloads never change payment state
	payment, err := f.payments.GetByReference(context.Background(), init.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
}

func TestWebhookHandler_SignatureCoversExactBody(t *testing.T) {
	f := newWebhookFixture(t)
	init := f.initializedPayment(t)

	signed := chargeSuccessBody(init.Reference)
	tampered := append([]byte(nil), signed...)
	tampered[len(tampered)-2] = 'x'

	w := f.post(tampered, f.gw.Sign(signed))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookHandler_MalformedPayload(t *testing.T) {
	f := newWebhookFixture(t)

	body := []byte(`{"event":`)
	w := f.post(body, f.gw.Sign(body))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookHandler_IgnoredEventAcked(t *testing.T) {
	f := newWebhookFixture(t)

	body := []byte(`{"event":"transfer.success","data":{"reference":"whatever"}}`)
	w := f.post(body, f.gw.Sign(body))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWebhookHandler_UnknownReference(t *testing.T) {
	f := newWebhookFixture(t)

	body := chargeSuccessBody("srv_does_not_exist")
	w := f.post(body, f.gw.Sign(body))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWebhookHandler_Replay(t *testing.T) {
	f := newWebhookFixture(t)
	init := f.initializedPayment(t)

	body := chargeSuccessBody(init.Reference)
	signature := f.gw.Sign(body)

	assert.Equal(t, http.StatusOK, f.post(body, signature).Code)
	assert.Equal(t, http.StatusOK, f.post(body, signature).Code)

	payment, err := f.payments.GetByReference(context.Background(), init.Reference)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, payment.Status)
}
