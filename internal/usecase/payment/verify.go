package usecase

import (
	"context"
	"errors"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

// VerifyPayment is the pull path: the client polls after being redirected
// back from the gateway. The gateway round-trip happens before any record
// lock is taken.
func (uc *DefaultPaymentUsecase) VerifyPayment(ctx context.Context, reference string) (*paymentdto.VerifyPaymentOutput, error) {
	// unknown references 404 without a gateway round-trip
	if _, err := uc.PaymentRepo.GetPaymentByReference(ctx, reference); err != nil {
		return nil, err
	}

	outcome, err := uc.Gateway.Verify(ctx, reference)
	if err != nil {
		uc.recordGatewayError("verify", err)
		return nil, err
	}
	if outcome.Kind == domain.OutcomePending {
		return nil, domain.ErrPaymentNotConfirmed
	}

	if err := uc.Reconcile(ctx, reference, *outcome); err != nil {
		if !errors.Is(err, domain.ErrPaymentConflict) {
			return nil, err
		}
		// the existing terminal state wins over the reported outcome;
		// answer from the stored record
		payment, lookupErr := uc.PaymentRepo.GetPaymentByReference(ctx, reference)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &paymentdto.VerifyPaymentOutput{
			Reference: reference,
			Confirmed: payment.Status == domain.PaymentStatusCompleted,
		}, nil
	}

	return &paymentdto.VerifyPaymentOutput{
		Reference: reference,
		Confirmed: outcome.Kind == domain.OutcomeSuccess,
	}, nil
}
