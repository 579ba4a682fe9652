package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

// RetryPayment re-initializes a failed payment attempt against the gateway.
// A Failed record is never mutated into Completed in place: it is reset to a
// fresh Pending attempt first and confirmed through the regular
// reconciliation paths. The cap/cooldown guard is the atomic increment in
// the repository, taken before the gateway call so two concurrent retries
// cannot both open a charge.
func (uc *DefaultPaymentUsecase) RetryPayment(ctx context.Context, reference string) (*paymentdto.InitiatePaymentOutput, error) {
	payment, err := uc.PaymentRepo.GetPaymentByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.PaymentStatusFailed {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	if err := uc.Retry.CanRetry(payment, now); err != nil {
		uc.recordRetryDenied(err)
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	email, err := uc.Identity.GetUserEmail(ctx, order.UserID)
	if err != nil {
		return nil, err
	}

	ok, err := uc.PaymentRepo.RegisterRetry(ctx, reference, now, uc.Retry.MaxAttempts, uc.Retry.Cooldown)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race; report the precise reason from the fresh record
		if fresh, lookupErr := uc.PaymentRepo.GetPaymentByReference(ctx, reference); lookupErr == nil {
			if checkErr := uc.Retry.CanRetry(fresh, now); checkErr != nil {
				uc.recordRetryDenied(checkErr)
				return nil, checkErr
			}
		}
		uc.recordRetryDenied(domain.ErrRetryLimitReached)
		return nil, domain.ErrRetryLimitReached
	}

	result, err := uc.Gateway.Initialize(ctx, domain.InitializeInput{
		Reference: reference,
		Email:     email,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Method:    payment.Method,
	})
	if err != nil {
		uc.recordGatewayError("initialize", err)
		uc.Logger.Error("gateway re-initialization failed",
			zap.String("reference", reference),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.PaymentRepo.ReconcileTx(ctx, reference, func(p *domain.Payment, o *domain.Order) (bool, error) {
		if p.Status != domain.PaymentStatusFailed {
			return false, domain.ErrInvalidTransition
		}
		p.Status = domain.PaymentStatusPending
		p.TransactionID = ""
		p.Metadata = domain.MergeMetadata(p.Metadata, map[string]any{
			"reinitialized_at": now.UTC().Format(time.RFC3339),
		})
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	uc.Logger.Info("payment re-initialized",
		zap.String("reference", reference),
		zap.Int("retry_count", payment.RetryCount+1),
	)

	return &paymentdto.InitiatePaymentOutput{
		Reference:  reference,
		PaymentURL: result.PaymentURL,
		Method:     payment.Method,
		Currency:   payment.Currency,
	}, nil
}

func (uc *DefaultPaymentUsecase) recordRetryDenied(err error) {
	if uc.Metrics == nil {
		return
	}
	if errors.Is(err, domain.ErrRetryCooldownActive) {
		uc.Metrics.RecordRetryDenied("cooldown")
		return
	}
	uc.Metrics.RecordRetryDenied("limit")
}
