package domain

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrPaymentExists       = errors.New("payment already exists for order")
	ErrPaymentConflict     = errors.New("payment already in conflicting terminal state")
	ErrInvalidTransition   = errors.New("invalid payment status transition")
	ErrInvalidReference    = errors.New("malformed payment reference")
	ErrValidation          = errors.New("validation failed")
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by gateway")
	ErrGatewayUnavailable  = errors.New("payment gateway unavailable")
	ErrGatewayTimeout      = errors.New("payment gateway timed out")
	ErrGatewayRejected     = errors.New("payment gateway rejected the request")
	ErrRetryLimitReached   = errors.New("payment retry limit reached")
	ErrRetryCooldownActive = errors.New("payment retry cooldown active")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)
