package paymentdto

import "github.com/osei-labs/marketplace-payment-service/internal/domain"

type InitiatePaymentInput struct {
	OrderID  string
	Amount   float64
	Currency domain.Currency
	Method   domain.PaymentMethod
}

// WebhookEventInput is the parsed provider notification. Raw carries the
// full decoded payload for the audit trail.
type WebhookEventInput struct {
	Event         string
	Reference     string
	TransactionID string
	Message       string
	Raw           map[string]any
}
