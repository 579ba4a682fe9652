package usecase

import (
	"context"
	"fmt"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

const (
	EventChargeSuccess   = "charge.success"
	EventChargeFailed    = "charge.failed"
	EventRefundProcessed = "refund.processed"
)

// HandleWebhookEvent is the push path: the provider notifies asynchronously,
// possibly duplicated and out of order relative to verify calls. Signature
// verification happens in the delivery layer on the raw body, before the
// payload reaches this code.
func (uc *DefaultPaymentUsecase) HandleWebhookEvent(ctx context.Context, input *paymentdto.WebhookEventInput) error {
	if input.Reference == "" {
		return fmt.Errorf("%w: webhook event without reference", domain.ErrValidation)
	}

	outcome := domain.Outcome{
		TransactionID: input.TransactionID,
		Reason:        input.Message,
		Source:        "webhook",
		Raw:           input.Raw,
	}
	switch input.Event {
	case EventChargeSuccess:
		outcome.Kind = domain.OutcomeSuccess
	case EventChargeFailed:
		outcome.Kind = domain.OutcomeFailure
	case EventRefundProcessed:
		outcome.Kind = domain.OutcomeRefunded
	default:
		return fmt.Errorf("%w: unknown webhook event %q", domain.ErrValidation, input.Event)
	}

	return uc.Reconcile(ctx, input.Reference, outcome)
}
