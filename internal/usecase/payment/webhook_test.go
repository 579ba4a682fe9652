package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/inmemory"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
	usecase "github.com/osei-labs/marketplace-payment-service/internal/usecase/payment"
)

func TestHandleWebhookEvent_ChargeSuccess(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	uc := newTestUsecase(store, nil)
	ctx := context.Background()

	err := uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event:         usecase.EventChargeSuccess,
		Reference:     "42-7",
		TransactionID: "txn_1",
		Raw:           map[string]any{"event": "charge.success"},
	})
	require.NoError(t, err)

	payment, err := store.GetPaymentByReference(ctx, "42-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, "txn_1", payment.TransactionID)

	order, err := store.GetOrderByID(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPaid, order.Status)

	// duplicate delivery of the same event
	require.NoError(t, uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event:         usecase.EventChargeSuccess,
		Reference:     "42-7",
		TransactionID: "txn_1",
	}))
}

func TestHandleWebhookEvent_ChargeFailed(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	uc := newTestUsecase(store, nil)
	ctx := context.Background()

	err := uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event:     usecase.EventChargeFailed,
		Reference: "42-7",
		Message:   "insufficient funds",
	})
	require.NoError(t, err)

	payment, err := store.GetPaymentByReference(ctx, "42-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusFailed, payment.Status)
	assert.Equal(t, "insufficient funds", payment.Metadata["failure_reason"])
}

func TestHandleWebhookEvent_RefundProcessed(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	uc := newTestUsecase(store, nil)
	ctx := context.Background()

	require.NoError(t, uc.Reconcile(ctx, "42-7", domain.Outcome{
		Kind:          domain.OutcomeSuccess,
		TransactionID: "txn_1",
		Source:        "verify",
	}))

	err := uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event:         usecase.EventRefundProcessed,
		Reference:     "42-7",
		TransactionID: "rf_1",
	})
	require.NoError(t, err)

	payment, err := store.GetPaymentByReference(ctx, "42-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)
}

func TestHandleWebhookEvent_Invalid(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	uc := newTestUsecase(store, nil)
	ctx := context.Background()

	err := uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event: usecase.EventChargeSuccess,
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "reference is required")

	err = uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event:     "subscription.create",
		Reference: "42-7",
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "unknown events are rejected")

	err = uc.HandleWebhookEvent(ctx, &paymentdto.WebhookEventInput{
		Event:     usecase.EventChargeSuccess,
		Reference: "99-1",
	})
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}
