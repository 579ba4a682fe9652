package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/delivery/http/dto/payment/request"
	"github.com/osei-labs/marketplace-payment-service/internal/delivery/http/dto/payment/response"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/metrics"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/signature"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
	usecase "github.com/osei-labs/marketplace-payment-service/internal/usecase/payment"
)

const SignatureHeader = "x-provider-signature"

type WebhookHandler struct {
	paymentUsecase usecase.PaymentUsecase
	verifier       *signature.Verifier
	metrics        *metrics.PaymentMetrics
	logger         *zap.Logger
}

func NewWebhookHandler(
	paymentUsecase usecase.PaymentUsecase,
	verifier *signature.Verifier,
	paymentMetrics *metrics.PaymentMetrics,
	logger *zap.Logger) *WebhookHandler {

	return &WebhookHandler{
		paymentUsecase: paymentUsecase,
		verifier:       verifier,
		metrics:        paymentMetrics,
		logger:         logger,
	}
}

// Handle processes POST /payments/webhook. The signature is verified over
// the exact raw request bytes before any JSON parsing. After a valid
// signature the provider gets 200 no matter what the downstream outcome is:
// a logical error like an unknown reference will never resolve on redelivery
// and returning non-2xx would only cause a retry storm. Malformed JSON is
// the one exception and gets 400.
func (h *WebhookHandler) Handle(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "failed to read request body"})
		return
	}

	providedSignature := c.GetHeader(SignatureHeader)
	if !h.verifier.Verify(rawBody, providedSignature) {
		if h.metrics != nil {
			h.metrics.RecordWebhookRejected()
		}
		h.logger.Warn("webhook signature verification failed",
			zap.Bool("signature_present", providedSignature != ""),
		)
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid signature"})
		return
	}

	var req request.WebhookRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "malformed payload"})
		return
	}

	var raw map[string]any
	_ = json.Unmarshal(rawBody, &raw)

	err = h.paymentUsecase.HandleWebhookEvent(c.Request.Context(), &paymentdto.WebhookEventInput{
		Event:         req.Event,
		Reference:     req.Data.Reference,
		TransactionID: string(req.Data.ID),
		Message:       req.Data.Message,
		Raw:           raw,
	})
	if err != nil {
		h.logger.Warn("webhook event not applied",
			zap.String("event", req.Event),
			zap.String("reference", req.Data.Reference),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
