package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/gateway"
	"github.com/servibook/servibook/internal/logger"
	"github.com/servibook/servibook/internal/repository"
	"github.com/servibook/servibook/internal/telemetry"
)

// PaymentService defines the interface for payment workflow operations
type PaymentService interface {
	// InitializePayment starts a hosted checkout for an accepted, priced booking
	InitializePayment(ctx context.Context, bookingID string) (*dto.InitializePaymentResponse, error)
	// ConfirmPayment reconciles a gateway verification for a reference
	ConfirmPayment(ctx context.Context, reference string) (*domain.Payment, error)
	// Get retrieves a payment by ID
	Get(ctx context.Context, id string) (*domain.Payment, error)
	// GetByBookingID retrieves the payment for a booking
	GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error)
	// GetByReference retrieves a payment by its gateway reference
	GetByReference(ctx context.Context, reference string) (*domain.Payment, error)
	// List retrieves payments, newest first
	List(ctx context.Context, limit, offset int) ([]*domain.Payment, error)
	// VerifyWebhookSignature reports whether a webhook body matches its signature
	VerifyWebhookSignature(body []byte, signature string) bool
}

type paymentService struct {
	paymentRepo   repository.PaymentRepository
	bookingRepo   repository.BookingRepository
	userRepo      repository.UserRepository
	serviceRepo   repository.ServiceRepository
	gw            gateway.PaymentGateway
	notifications NotificationService
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	gw gateway.PaymentGateway,
	notifications NotificationService,
) PaymentService {
	return &paymentService{
		paymentRepo:   paymentRepo,
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
		serviceRepo:   serviceRepo,
		gw:            gw,
		notifications: notifications,
	}
}

// InitializePayment starts a hosted checkout for an accepted, priced booking.
// Preconditions are checked in order: the booking must exist, be ACCEPTED,
// have no payment yet, and carry a positive price. The unique index on
// payments.booking_id makes the loser of a concurrent race fail on insert.
func (s *paymentService) InitializePayment(ctx context.Context, bookingID string) (*dto.InitializePaymentResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.initialize")
	defer span.End()

	span.SetAttributes(attribute.String("booking_id", bookingID))

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !booking.IsAccepted() {
		span.SetStatus(codes.Error, "booking not accepted")
		return nil, fmt.Errorf("%w: %s", domain.ErrBookingNotAccepted, booking.Status)
	}

	if _, err := s.paymentRepo.GetByBookingID(ctx, bookingID); err == nil {
		span.SetStatus(codes.Error, "payment already exists")
		return nil, domain.ErrPaymentAlreadyExists
	} else if !domain.IsNotFoundError(err) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if booking.Price == nil || *booking.Price <= 0 {
		span.SetStatus(codes.Error, "invalid booking price")
		return nil, domain.ErrInvalidBookingPrice
	}

	user, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metadata := map[string]string{"booking_id": booking.ID}
	if svc, err := s.serviceRepo.GetByID(ctx, booking.ServiceID); err == nil {
		metadata["service_name"] = svc.Name
	}

	reference := "srv_" + uuid.New().String()
	initResp, err := s.gw.Initialize(ctx, &gateway.InitializeRequest{
		Email:     user.Email,
		Amount:    *booking.Price,
		Reference: reference,
		Metadata:  metadata,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if initResp.Reference != "" {
		reference = initResp.Reference
	}

	payment, err := domain.NewPayment(uuid.New().String(), booking.ID, *booking.Price, reference)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("payment_id", payment.ID))
	span.SetStatus(codes.Ok, "")

	return &dto.InitializePaymentResponse{
		PaymentID:        payment.ID,
		AuthorizationURL: initResp.AuthorizationURL,
		Reference:        reference,
		Amount:           payment.Amount,
	}, nil
}

// ConfirmPayment reconciles a gateway verification for a reference. It is
// idempotent: confirming an already settled payment changes nothing. The
// payment and its booking are updated in one transaction.
func (s *paymentService) ConfirmPayment(ctx context.Context, reference string) (*domain.Payment, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.payment.confirm")
	defer span.End()

	span.SetAttributes(attribute.String("reference", reference))

	verification, err := s.gw.Verify(ctx, reference)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !verification.Succeeded() {
		span.SetStatus(codes.Error, "verification failed")
		return nil, domain.ErrVerificationFailed
	}

	payment, err := s.resolvePayment(ctx, reference, verification.Metadata)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if payment.IsSettled() {
		span.SetStatus(codes.Ok, "already settled")
		return payment, nil
	}

	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	paidAt := verification.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	payment.MarkSuccess(paidAt)
	booking.Status = domain.BookingStatusAccepted
	booking.UpdatedAt = time.Now()

	if err := s.paymentRepo.ConfirmWithBooking(ctx, payment, booking); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("payment_id", payment.ID))
	span.SetStatus(codes.Ok, "")

	s.notifyAsync(booking.UserID, "Your payment has been confirmed.")
	return payment, nil
}

// resolvePayment finds the local payment for a verification, preferring the
// booking named in the gateway metadata
func (s *paymentService) resolvePayment(ctx context.Context, reference string, metadata map[string]string) (*domain.Payment, error) {
	if bookingID := metadata["booking_id"]; bookingID != "" {
		payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
		if err == nil {
			return payment, nil
		}
		if !domain.IsNotFoundError(err) {
			return nil, err
		}
	}
	return s.paymentRepo.GetByReference(ctx, reference)
}

// Get retrieves a payment by ID
func (s *paymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// GetByBookingID retrieves the payment for a booking
func (s *paymentService) GetByBookingID(ctx context.Context, bookingID string) (*domain.Payment, error) {
	return s.paymentRepo.GetByBookingID(ctx, bookingID)
}

// GetByReference retrieves a payment by its gateway reference
func (s *paymentService) GetByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	return s.paymentRepo.GetByReference(ctx, reference)
}

// List retrieves payments, newest first
func (s *paymentService) List(ctx context.Context, limit, offset int) ([]*domain.Payment, error) {
	return s.paymentRepo.List(ctx, limit, offset)
}

// VerifyWebhookSignature reports whether a webhook body matches its signature
func (s *paymentService) VerifyWebhookSignature(body []byte, signature string) bool {
	return s.gw.VerifyWebhookSignature(body, signature)
}

func (s *paymentService) notifyAsync(userID, message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if _, err := s.notifications.Notify(ctx, userID, message); err != nil {
			logger.Get().Warn("notification write failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
		}
	}()
}
