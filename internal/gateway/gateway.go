package gateway

import (
	"context"
	"time"
)

// PaymentGateway defines the interface for the external payment processor
type PaymentGateway interface {
	// Initialize starts a hosted checkout for the given charge and returns
	// the URL the user should be redirected to.
	Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error)

	// Verify fetches the settlement state of a transaction by reference.
	Verify(ctx context.Context, reference string) (*VerifyResponse, error)

	// VerifyWebhookSignature reports whether the signature header matches
	// the raw webhook body.
	VerifyWebhookSignature(body []byte, signature string) bool

	// Name returns the gateway name
	Name() string
}

// InitializeRequest represents a checkout initialization request
type InitializeRequest struct {
	Email       string
	Amount      float64
	Reference   string
	CallbackURL string
	Metadata    map[string]string
}

// InitializeResponse represents a checkout initialization response
type InitializeResponse struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyResponse represents the settlement state of a transaction
type VerifyResponse struct {
	Status    string
	Reference string
	Amount    float64
	PaidAt    time.Time
	Metadata  map[string]string
}

// Succeeded reports whether the transaction settled
func (r *VerifyResponse) Succeeded() bool {
	return r.Status == "success"
}
