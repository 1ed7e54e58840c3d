package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/dto"
	"github.com/servibook/servibook/internal/logger"
	"github.com/servibook/servibook/internal/repository"
	"github.com/servibook/servibook/internal/telemetry"
)

const notifyTimeout = 5 * time.Second

// BookingService defines the interface for booking lifecycle operations
type BookingService interface {
	// Create creates a PENDING booking for a user against a catalog entry
	Create(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*domain.Booking, error)
	// Approve marks a booking ACCEPTED on behalf of an admin
	Approve(ctx context.Context, bookingID, adminID string) (*domain.Booking, error)
	// Reject marks a booking REJECTED on behalf of an admin
	Reject(ctx context.Context, bookingID, adminID string) (*domain.Booking, error)
	// AssignPrice quotes a booking
	AssignPrice(ctx context.Context, bookingID string, price float64) (*domain.Booking, error)
	// Update patches a booking's assignable fields
	Update(ctx context.Context, bookingID string, req *dto.UpdateBookingRequest) (*domain.Booking, error)
	// Delete soft-deletes a booking
	Delete(ctx context.Context, bookingID string) error
	// Get retrieves a booking by ID
	Get(ctx context.Context, bookingID string) (*domain.Booking, error)
	// List retrieves bookings matching the filter
	List(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*domain.Booking, error)
}

type bookingService struct {
	bookingRepo   repository.BookingRepository
	userRepo      repository.UserRepository
	serviceRepo   repository.ServiceRepository
	notifications NotificationService
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	serviceRepo repository.ServiceRepository,
	notifications NotificationService,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
		serviceRepo:   serviceRepo,
		notifications: notifications,
	}
}

// Create creates a PENDING booking for a user against a catalog entry
func (s *bookingService) Create(ctx context.Context, userID string, req *dto.CreateBookingRequest) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.create")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("service_id", req.ServiceID),
	)

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if _, err := s.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	booking, err := domain.NewBooking(uuid.New().String(), userID, req.ServiceID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("booking_id", booking.ID))
	span.SetStatus(codes.Ok, "")

	s.notifyAsync(userID, "Your booking has been received and is pending approval.")
	return booking, nil
}

// Approve marks a booking ACCEPTED on behalf of an admin. An admin may
// review a booking more than once.
func (s *bookingService) Approve(ctx context.Context, bookingID, adminID string) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.approve")
	defer span.End()

	booking, err := s.review(ctx, bookingID, adminID, (*domain.Booking).Approve)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	s.notifyAsync(booking.UserID, "Your booking has been approved.")
	return booking, nil
}

// Reject marks a booking REJECTED on behalf of an admin
func (s *bookingService) Reject(ctx context.Context, bookingID, adminID string) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.reject")
	defer span.End()

	booking, err := s.review(ctx, bookingID, adminID, (*domain.Booking).Reject)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	s.notifyAsync(booking.UserID, "Your booking has been rejected.")
	return booking, nil
}

func (s *bookingService) review(ctx context.Context, bookingID, adminID string, transition func(*domain.Booking, string) error) (*domain.Booking, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return nil, domain.ErrInvalidAdmin
		}
		return nil, err
	}
	if !admin.Role.IsAdministrative() {
		return nil, domain.ErrInvalidAdmin
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := transition(booking, adminID); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// AssignPrice quotes a booking
func (s *bookingService) AssignPrice(ctx context.Context, bookingID string, price float64) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.assign_price")
	defer span.End()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := booking.AssignPrice(price); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// Update patches a booking's assignable fields
func (s *bookingService) Update(ctx context.Context, bookingID string, req *dto.UpdateBookingRequest) (*domain.Booking, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.update")
	defer span.End()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if req.UserID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.UserID); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		booking.UserID = *req.UserID
	}
	if req.ServiceID != nil {
		if _, err := s.serviceRepo.GetByID(ctx, *req.ServiceID); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		booking.ServiceID = *req.ServiceID
	}
	if req.AdminID != nil {
		admin, err := s.userRepo.GetByID(ctx, *req.AdminID)
		if err != nil || !admin.Role.IsAdministrative() {
			span.SetStatus(codes.Error, "invalid admin")
			return nil, domain.ErrInvalidAdmin
		}
		booking.AdminID = req.AdminID
	}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.IsValid() {
			span.SetStatus(codes.Error, "invalid status")
			return nil, domain.ErrInvalidStatus
		}
		booking.Status = status
	}
	booking.UpdatedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return booking, nil
}

// Delete soft-deletes a booking
func (s *bookingService) Delete(ctx context.Context, bookingID string) error {
	ctx, span := telemetry.StartSpan(ctx, "service.booking.delete")
	defer span.End()

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Get retrieves a booking by ID
func (s *bookingService) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, bookingID)
}

// List retrieves bookings matching the filter
func (s *bookingService) List(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*domain.Booking, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.bookingRepo.List(ctx, filter, limit, offset)
}

// notifyAsync writes the notification outside the request transaction. A
// failed write never affects the already-committed booking change.
func (s *bookingService) notifyAsync(userID, message string) {
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
