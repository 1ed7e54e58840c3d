package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockGateway implements PaymentGateway for tests. Transactions settle
// according to the configured verify status.
type MockGateway struct {
	mu           sync.Mutex
	secretKey    string
	verifyStatus string
	initErr      error
	verifyErr    error
	transactions map[string]*VerifyResponse
}

// NewMockGateway creates a mock gateway whose transactions verify as success
func NewMockGateway(secretKey string) *MockGateway {
	return &MockGateway{
		secretKey:    secretKey,
		verifyStatus: "success",
		transactions: make(map[string]*VerifyResponse),
	}
}

// SetVerifyStatus changes the status subsequent verifications report
func (g *MockGateway) SetVerifyStatus(status string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyStatus = status
}

// FailInitialize makes subsequent Initialize calls return err
func (g *MockGateway) FailInitialize(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initErr = err
}

// FailVerify makes subsequent Verify calls return err
func (g *MockGateway) FailVerify(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verifyErr = err
}

// Initialize records a transaction and returns a fake checkout URL
func (g *MockGateway) Initialize(_ context.Context, req *InitializeRequest) (*InitializeResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.initErr != nil {
		return nil, g.initErr
	}

	reference := req.Reference
	if reference == "" {
		reference = "mock_" + uuid.New().String()[:8]
	}

	g.transactions[reference] = &VerifyResponse{
		Status:    g.verifyStatus,
		Reference: reference,
		Amount:    req.Amount,
		PaidAt:    time.Now(),
		Metadata:  req.Metadata,
	}

	return &InitializeResponse{
		AuthorizationURL: "https://checkout.example.com/" + reference,
		AccessCode:       "access_" + reference,
		Reference:        reference,
	}, nil
}

// Verify returns the recorded transaction state
func (g *MockGateway) Verify(_ context.Context, reference string) (*VerifyResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.verifyErr != nil {
		return nil, g.verifyErr
	}

	txn, ok := g.transactions[reference]
	if !ok {
		return nil, fmt.Errorf("transaction not found: %s", reference)
	}

	resp := *txn
	resp.Status = g.verifyStatus
	return &resp, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 hex digest of the raw body
func (g *MockGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the signature a webhook sender would attach to body
func (g *MockGateway) Sign(body []byte) string {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Name returns the gateway name
func (g *MockGateway) Name() string {
	return "mock"
}

// Ensure MockGateway implements PaymentGateway
var _ PaymentGateway = (*MockGateway)(nil)
