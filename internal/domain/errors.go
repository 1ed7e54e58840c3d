package domain

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Service errors
	ErrServiceNotFound      = errors.New("service not found")
	ErrServiceAlreadyExists = errors.New("service already exists")

	// Booking errors
	ErrBookingNotFound    = errors.New("booking not found")
	ErrBookingNotAccepted = errors.New("booking is not yet accepted")
	ErrInvalidAdmin       = errors.New("invalid admin")

	// Payment errors
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentAlreadyExists = errors.New("payment already exists for this booking")
	ErrInvalidBookingPrice  = errors.New("invalid booking price")
	ErrVerificationFailed   = errors.New("payment verification failed")

	// Feedback errors
	ErrFeedbackNotFound = errors.New("feedback not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Validation errors
	ErrInvalidName      = errors.New("name is required")
	ErrInvalidEmail     = errors.New("email is required")
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidServiceID = errors.New("invalid service id")
	ErrInvalidBookingID = errors.New("invalid booking id")
	ErrInvalidPrice     = errors.New("price must be a positive number")
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrPaymentNotFound) ||
		errors.Is(err, ErrFeedbackNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidName) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidServiceID) ||
		errors.Is(err, ErrInvalidBookingID) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidRating)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrUserAlreadyExists) ||
		errors.Is(err, ErrServiceAlreadyExists) ||
		errors.Is(err, ErrPaymentAlreadyExists)
}
