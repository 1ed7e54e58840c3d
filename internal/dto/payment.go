package dto

// InitializePaymentRequest is the payload for starting a checkout
type InitializePaymentRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
}

// InitializePaymentResponse carries the hosted checkout details
type InitializePaymentResponse struct {
	PaymentID        string  `json:"payment_id"`
	AuthorizationURL string  `json:"authorization_url"`
	Reference        string  `json:"reference"`
	Amount           float64 `json:"amount"`
}
