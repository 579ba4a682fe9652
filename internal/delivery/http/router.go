package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osei-labs/marketplace-payment-service/internal/delivery/http/handlers"
)

// NewRouter wires the explicit routing table for the payment surface.
func NewRouter(paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", paymentHandler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	payments := router.Group("/payments")
	{
		payments.POST("", paymentHandler.InitiatePayment)
		payments.GET("/verify/:reference", paymentHandler.VerifyPayment)
		payments.POST("/webhook", webhookHandler.Handle)
		payments.POST("/:reference/retry", paymentHandler.RetryPayment)
	}

	return router
}
