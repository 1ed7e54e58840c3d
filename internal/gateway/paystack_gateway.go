package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

const defaultPaystackBaseURL = "https://api.paystack.co"

// PaystackGateway implements PaymentGateway against the Paystack HTTP API
type PaystackGateway struct {
	secretKey   string
	baseURL     string
	callbackURL string
	client      *http.Client
}

// PaystackConfig holds Paystack gateway configuration
type PaystackConfig struct {
	SecretKey   string
	BaseURL     string
	CallbackURL string
	Timeout     time.Duration
}

// NewPaystackGateway creates a new Paystack gateway client
func NewPaystackGateway(cfg *PaystackConfig) *PaystackGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultPaystackBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &PaystackGateway{
		secretKey:   cfg.SecretKey,
		baseURL:     baseURL,
		callbackURL: cfg.CallbackURL,
		client:      &http.Client{Timeout: timeout},
	}
}

type paystackInitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackInitializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string            `json:"status"`
		Reference string            `json:"reference"`
		Amount    int64             `json:"amount"`
		PaidAt    string            `json:"paid_at"`
		Metadata  map[string]string `json:"metadata"`
	} `json:"data"`
}

// Initialize starts a hosted checkout. Paystack expects amounts in the
// currency's smallest unit, so the amount is multiplied by 100.
func (g *PaystackGateway) Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error) {
	payload := paystackInitializeRequest{
		Email:       req.Email,
		Amount:      int64(math.Round(req.Amount * 100)),
		Reference:   req.Reference,
		CallbackURL: g.callbackURL,
		Metadata:    req.Metadata,
	}

	var out paystackInitializeResponse
	if err := g.do(ctx, http.MethodPost, "/transaction/initialize", payload, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", out.Message)
	}

	return &InitializeResponse{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// Verify fetches the settlement state of a transaction by reference
func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*VerifyResponse, error) {
	var out paystackVerifyResponse
	if err := g.do(ctx, http.MethodGet, "/transaction/verify/"+reference, nil, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, fmt.Errorf("paystack verify failed: %s", out.Message)
	}

	resp := &VerifyResponse{
		Status:    out.Data.Status,
		Reference: out.Data.Reference,
		Amount:    float64(out.Data.Amount) / 100,
		Metadata:  out.Data.Metadata,
	}
	if out.Data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, out.Data.PaidAt); err == nil {
			resp.PaidAt = paidAt
		}
	}

	return resp, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 hex digest of the raw body
// against the signature header value
func (g *PaystackGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(g.secretKey))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Name returns the gateway name
func (g *PaystackGateway) Name() string {
	return "paystack"
}

func (g *PaystackGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("paystack returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode paystack response: %w", err)
	}

	return nil
}

// Ensure PaystackGateway implements PaymentGateway
var _ PaymentGateway = (*PaystackGateway)(nil)
