package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/logger"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

// SignatureHeader carries the HMAC-SHA512 digest of the raw webhook body
const SignatureHeader = "X-Paystack-Signature"

const eventChargeSuccess = "charge.success"

// WebhookHandler handles inbound gateway webhook requests
type WebhookHandler struct {
	payments service.PaymentService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(payments service.PaymentService) *WebhookHandler {
	return &WebhookHandler{payments: payments}
}

type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// Handle handles POST /webhooks/paystack. The signature is checked against
// the raw body before the payload is trusted.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "failed to read request body")
		return
	}

	signature := c.GetHeader(SignatureHeader)
	if signature == "" || !h.payments.VerifyWebhookSignature(body, signature) {
		response.Unauthorized(c, "invalid webhook signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		response.BadRequest(c, "malformed webhook payload")
		return
	}

	if event.Event != eventChargeSuccess {
		// Acknowledge events we do not act on so the gateway stops retrying
		response.Success(c, gin.H{"received": true})
		return
	}

	if _, err := h.payments.GetByReference(c.Request.Context(), event.Data.Reference); err != nil {
		handleError(c, err)
		return
	}

	payment, err := h.payments.ConfirmPayment(c.Request.Context(), event.Data.Reference)
	if err != nil {
		if !domain.IsNotFoundError(err) {
			logger.Get().Error("webhook confirmation failed",
				zap.String("reference", event.Data.Reference),
				zap.Error(err),
			)
		}
		handleError(c, err)
		return
	}

	response.Success(c, payment)
}
