package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	publisher "github.com/osei-labs/marketplace-payment-service/internal/infrastructure/kafka"
)

// Reconcile applies a gateway outcome to the payment and its order as one
// atomic unit. It is invoked from the verify path and the webhook path with
// no ordering guarantee between them and no protection against duplicate
// delivery; duplicates of an already-applied outcome are no-op successes,
// conflicting outcomes lose to the existing terminal state.
func (uc *DefaultPaymentUsecase) Reconcile(ctx context.Context, reference string, outcome domain.Outcome) error {
	start := time.Now()

	var applied *domain.Payment
	err := uc.PaymentRepo.ReconcileTx(ctx, reference, func(p *domain.Payment, o *domain.Order) (bool, error) {
		switch outcome.Kind {
		case domain.OutcomeSuccess:
			switch p.Status {
			case domain.PaymentStatusCompleted:
				return false, nil
			case domain.PaymentStatusFailed, domain.PaymentStatusRefunded:
				return false, domain.ErrPaymentConflict
			}
			p.Status = domain.PaymentStatusCompleted
			p.TransactionID = outcome.TransactionID
			p.Metadata = domain.MergeMetadata(p.Metadata, auditEntry(outcome))
			o.Status = domain.OrderStatusPaid

		case domain.OutcomeFailure:
			switch p.Status {
			case domain.PaymentStatusFailed:
				return false, nil
			case domain.PaymentStatusCompleted, domain.PaymentStatusRefunded:
				return false, domain.ErrPaymentConflict
			}
			entry := auditEntry(outcome)
			entry["failure_reason"] = outcome.Reason
			p.Status = domain.PaymentStatusFailed
			p.Metadata = domain.MergeMetadata(p.Metadata, entry)

		case domain.OutcomeRefunded:
			if p.Status == domain.PaymentStatusRefunded {
				return false, nil
			}
			if p.Status != domain.PaymentStatusCompleted {
				return false, domain.ErrInvalidTransition
			}
			entry := auditEntry(outcome)
			entry["refund_id"] = outcome.TransactionID
			p.Status = domain.PaymentStatusRefunded
			p.Metadata = domain.MergeMetadata(p.Metadata, entry)

		default:
			return false, fmt.Errorf("%w: outcome %q cannot be reconciled", domain.ErrValidation, outcome.Kind)
		}

		snapshot := *p
		applied = &snapshot
		return true, nil
	})

	if uc.Metrics != nil {
		uc.Metrics.RecordReconcileDuration(string(outcome.Kind), outcome.Source, time.Since(start).Seconds())
	}

	if err != nil {
		if errors.Is(err, domain.ErrPaymentConflict) {
			uc.Logger.Warn("outcome conflicts with terminal payment state",
				zap.String("reference", reference),
				zap.String("outcome", string(outcome.Kind)),
				zap.String("source", outcome.Source),
			)
			if uc.Metrics != nil {
				uc.Metrics.RecordReconcileConflict(string(outcome.Kind), outcome.Source)
			}
		}
		return err
	}

	if applied == nil {
		// duplicate delivery of an already-applied outcome
		uc.Logger.Info("duplicate outcome ignored",
			zap.String("reference", reference),
			zap.String("outcome", string(outcome.Kind)),
			zap.String("source", outcome.Source),
		)
		return nil
	}

	uc.Logger.Info("payment reconciled",
		zap.String("reference", reference),
		zap.String("order_id", applied.OrderID),
		zap.String("status", string(applied.Status)),
		zap.String("source", outcome.Source),
	)
	uc.recordTransitionMetrics(applied, outcome.Source)
	uc.publishPaymentEvent(applied, outcome.Source)
	return nil
}

// auditEntry builds the namespaced audit keys merged into payment metadata,
// e.g. webhook_data / webhook_received_at for the push path.
func auditEntry(outcome domain.Outcome) map[string]any {
	entry := map[string]any{
		outcome.Source + "_received_at": time.Now().UTC().Format(time.RFC3339),
	}
	if outcome.Raw != nil {
		entry[outcome.Source+"_data"] = outcome.Raw
	}
	return entry
}

func (uc *DefaultPaymentUsecase) recordTransitionMetrics(p *domain.Payment, source string) {
	if uc.Metrics == nil {
		return
	}
	switch p.Status {
	case domain.PaymentStatusCompleted:
		uc.Metrics.RecordPaymentCompleted(string(p.Currency), string(p.Method), source, p.Amount)
	case domain.PaymentStatusFailed:
		uc.Metrics.RecordPaymentFailed(string(p.Currency), string(p.Method), source)
	case domain.PaymentStatusRefunded:
		uc.Metrics.RecordPaymentRefunded(string(p.Currency))
	}
}

func (uc *DefaultPaymentUsecase) publishPaymentEvent(p *domain.Payment, source string) {
	if uc.Publisher == nil {
		return
	}
	event := publisher.PaymentEvent{
		EventID:       uc.newEventID(),
		OrderID:       p.OrderID,
		Reference:     p.Reference,
		Status:        string(p.Status),
		Amount:        p.Amount,
		Currency:      string(p.Currency),
		Method:        string(p.Method),
		TransactionID: p.TransactionID,
		Source:        source,
		OccurredAt:    time.Now().UTC(),
	}
	go func(event publisher.PaymentEvent) {
		if err := uc.Publisher.PublishPaymentEvent(event); err != nil {
			uc.Logger.Error("failed to publish payment event",
				zap.String("reference", event.Reference),
				zap.Error(err),
			)
		}
	}(event)
}
