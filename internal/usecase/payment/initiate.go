package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

// InitiatePayment creates the external charge and, only after the gateway
// accepted it, the local pending payment record. A failed initialization
// leaves no orphan record behind.
func (uc *DefaultPaymentUsecase) InitiatePayment(ctx context.Context, input *paymentdto.InitiatePaymentInput) (*paymentdto.InitiatePaymentOutput, error) {
	if input.OrderID == "" {
		return nil, fmt.Errorf("%w: order_id is required", domain.ErrValidation)
	}
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}

	currency := input.Currency
	if currency == "" {
		currency = domain.CurrencyGHS
	}
	if !domain.ValidCurrency(currency) {
		return nil, fmt.Errorf("%w: unsupported currency %q", domain.ErrValidation, currency)
	}

	method := input.Method
	if method == "" {
		method = domain.MethodCard
	}
	if !domain.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unsupported payment method %q", domain.ErrValidation, method)
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	// one payment attempt per order
	if _, err := uc.PaymentRepo.GetPaymentByOrderID(ctx, order.ID); err == nil {
		return nil, domain.ErrPaymentExists
	} else if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}

	reference := domain.BuildReference(order.ID, order.UserID)
	if err := domain.ValidateReference(reference, order.ID); err != nil {
		return nil, err
	}

	email, err := uc.Identity.GetUserEmail(ctx, order.UserID)
	if err != nil {
		uc.Logger.Error("failed to resolve payer email",
			zap.String("order_id", order.ID),
			zap.String("user_id", order.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	result, err := uc.Gateway.Initialize(ctx, domain.InitializeInput{
		Reference: reference,
		Email:     email,
		Amount:    input.Amount,
		Currency:  currency,
		Method:    method,
	})
	if err != nil {
		uc.recordGatewayError("initialize", err)
		uc.Logger.Error("gateway initialization failed",
			zap.String("order_id", order.ID),
			zap.String("reference", reference),
			zap.Error(err),
		)
		return nil, err
	}

	payment := &domain.Payment{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		Amount:    input.Amount,
		Currency:  currency,
		Method:    method,
		Status:    domain.PaymentStatusPending,
		Reference: reference,
	}
	if err := uc.PaymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordPaymentInitiated(string(currency), string(method), input.Amount)
	}
	uc.Logger.Info("payment initiated",
		zap.String("order_id", order.ID),
		zap.String("reference", reference),
		zap.Float64("amount", input.Amount),
		zap.String("currency", string(currency)),
	)

	return &paymentdto.InitiatePaymentOutput{
		Reference:  reference,
		PaymentURL: result.PaymentURL,
		Method:     method,
		Currency:   currency,
	}, nil
}

func (uc *DefaultPaymentUsecase) recordGatewayError(operation string, err error) {
	if uc.Metrics == nil {
		return
	}
	switch {
	case errors.Is(err, domain.ErrGatewayTimeout):
		uc.Metrics.RecordGatewayError(operation, "timeout")
	case errors.Is(err, domain.ErrGatewayUnavailable):
		uc.Metrics.RecordGatewayError(operation, "unavailable")
	case errors.Is(err, domain.ErrGatewayRejected):
		uc.Metrics.RecordGatewayError(operation, "rejected")
	}
}
