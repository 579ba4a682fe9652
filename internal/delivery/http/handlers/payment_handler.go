package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/delivery/http/dto/payment/request"
	"github.com/osei-labs/marketplace-payment-service/internal/delivery/http/dto/payment/response"
	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	usecase "github.com/osei-labs/marketplace-payment-service/internal/usecase/payment"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	logger         *zap.Logger
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		logger:         logger,
	}
}

// InitiatePayment handles POST /payments
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req request.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	output, err := h.paymentUsecase.InitiatePayment(c.Request.Context(), &paymentdto.InitiatePaymentInput{
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Currency: domain.Currency(req.Currency),
		Method:   domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.InitiatePaymentResponse{
		PaymentURL:    output.PaymentURL,
		PaymentMethod: string(output.Method),
		Currency:      string(output.Currency),
		Reference:     output.Reference,
	})
}

// VerifyPayment handles GET /payments/verify/:reference
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	reference := c.Param("reference")

	output, err := h.paymentUsecase.VerifyPayment(c.Request.Context(), reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !output.Confirmed {
		c.JSON(http.StatusBadRequest, response.VerifyPaymentResponse{
			Message:   "Payment verification failed",
			Reference: reference,
		})
		return
	}
	c.JSON(http.StatusOK, response.VerifyPaymentResponse{
		Message:   "Payment verified successfully",
		Reference: reference,
	})
}

// RetryPayment handles POST /payments/:reference/retry
func (h *PaymentHandler) RetryPayment(c *gin.Context) {
	reference := c.Param("reference")

	output, err := h.paymentUsecase.RetryPayment(c.Request.Context(), reference)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.InitiatePaymentResponse{
		PaymentURL:    output.PaymentURL,
		PaymentMethod: string(output.Method),
		Currency:      string(output.Currency),
		Reference:     output.Reference,
	})
}

// HealthCheck handles GET /healthz
func (h *PaymentHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *PaymentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrPaymentExists),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrPaymentNotConfirmed),
		errors.Is(err, domain.ErrGatewayRejected):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrRetryLimitReached),
		errors.Is(err, domain.ErrRetryCooldownActive):
		c.JSON(http.StatusTooManyRequests, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrGatewayTimeout):
		c.JSON(http.StatusGatewayTimeout, response.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrGatewayUnavailable),
		errors.Is(err, domain.ErrIdentityUnavailable):
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("unhandled payment error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}
}
