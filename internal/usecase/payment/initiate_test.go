package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/inmemory"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

func TestInitiatePayment_CreatesPendingRecord(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{
		ID:         "42",
		UserID:     "7",
		TotalPrice: 100.00,
		Status:     domain.OrderStatusPending,
	})

	var initInput domain.InitializeInput
	gateway := &fakeGateway{
		initializeFn: func(_ context.Context, input domain.InitializeInput) (*domain.InitializeResult, error) {
			initInput = input
			return &domain.InitializeResult{
				Reference:  input.Reference,
				PaymentURL: "https://checkout.test/" + input.Reference,
			}, nil
		},
	}
	uc := newTestUsecase(store, gateway)

	out, err := uc.InitiatePayment(context.Background(), &paymentdto.InitiatePaymentInput{
		OrderID: "42",
		Amount:  100.00,
	})
	require.NoError(t, err)

	assert.Equal(t, "42-7", out.Reference)
	assert.Equal(t, "https://checkout.test/42-7", out.PaymentURL)
	assert.Equal(t, domain.CurrencyGHS, out.Currency, "currency defaults")
	assert.Equal(t, domain.MethodCard, out.Method, "method defaults")

	assert.Equal(t, "buyer@example.com", initInput.Email)
	assert.Equal(t, 100.00, initInput.Amount)

	payment, err := store.GetPaymentByReference(context.Background(), "42-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
	assert.Equal(t, "42", payment.OrderID)
	assert.NotEmpty(t, payment.ID)
}

func TestInitiatePayment_Validation(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{ID: "42", UserID: "7", Status: domain.OrderStatusPending})
	uc := newTestUsecase(store, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		input paymentdto.InitiatePaymentInput
	}{
		{"missing order id", paymentdto.InitiatePaymentInput{Amount: 10}},
		{"zero amount", paymentdto.InitiatePaymentInput{OrderID: "42"}},
		{"negative amount", paymentdto.InitiatePaymentInput{OrderID: "42", Amount: -5}},
		{"unknown currency", paymentdto.InitiatePaymentInput{OrderID: "42", Amount: 10, Currency: "XTS"}},
		{"unknown method", paymentdto.InitiatePaymentInput{OrderID: "42", Amount: 10, Method: "cheque"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.InitiatePayment(ctx, &tc.input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestInitiatePayment_UnknownOrder(t *testing.T) {
	uc := newTestUsecase(inmemory.NewStore(), nil)

	_, err := uc.InitiatePayment(context.Background(), &paymentdto.InitiatePaymentInput{
		OrderID: "nope",
		Amount:  10,
	})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestInitiatePayment_SecondAttemptRejected(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	uc := newTestUsecase(store, nil)

	_, err := uc.InitiatePayment(context.Background(), &paymentdto.InitiatePaymentInput{
		OrderID: "42",
		Amount:  100.00,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentExists)
}

func TestInitiatePayment_GatewayFailureLeavesNoRecord(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{ID: "42", UserID: "7", Status: domain.OrderStatusPending})

	gateway := &fakeGateway{
		initializeFn: func(context.Context, domain.InitializeInput) (*domain.InitializeResult, error) {
			return nil, domain.ErrGatewayUnavailable
		},
	}
	uc := newTestUsecase(store, gateway)

	_, err := uc.InitiatePayment(context.Background(), &paymentdto.InitiatePaymentInput{
		OrderID: "42",
		Amount:  100.00,
	})
	require.ErrorIs(t, err, domain.ErrGatewayUnavailable)

	_, err = store.GetPaymentByReference(context.Background(), "42-7")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound, "no orphan record after a failed initialization")
}

func TestInitiatePayment_IdentityFailure(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{ID: "42", UserID: "7", Status: domain.OrderStatusPending})

	uc := newTestUsecase(store, nil)
	uc.Identity = &fakeIdentity{err: domain.ErrIdentityUnavailable}

	_, err := uc.InitiatePayment(context.Background(), &paymentdto.InitiatePaymentInput{
		OrderID: "42",
		Amount:  100.00,
	})
	assert.ErrorIs(t, err, domain.ErrIdentityUnavailable)
}
