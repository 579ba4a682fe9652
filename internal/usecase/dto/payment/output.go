package paymentdto

import "github.com/osei-labs/marketplace-payment-service/internal/domain"

type InitiatePaymentOutput struct {
	Reference  string
	PaymentURL string
	Method     domain.PaymentMethod
	Currency   domain.Currency
}

type VerifyPaymentOutput struct {
	Reference string
	Confirmed bool
}
