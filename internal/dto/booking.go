package dto

// CreateBookingRequest is the payload for requesting a booking
type CreateBookingRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

// UpdateBookingRequest is a partial patch of a booking's assignable fields
type UpdateBookingRequest struct {
	UserID    *string `json:"user_id"`
	ServiceID *string `json:"service_id"`
	AdminID   *string `json:"admin_id"`
	Status    *string `json:"status"`
}

// AssignPriceRequest is the payload for quoting a booking
type AssignPriceRequest struct {
	Price float64 `json:"price" binding:"required"`
}
