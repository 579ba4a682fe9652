package usecase_test

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/inmemory"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/kafka"
	usecase "github.com/osei-labs/marketplace-payment-service/internal/usecase/payment"
)

type fakeGateway struct {
	initializeFn func(ctx context.Context, input domain.InitializeInput) (*domain.InitializeResult, error)
	verifyFn     func(ctx context.Context, reference string) (*domain.Outcome, error)
}

func (f *fakeGateway) Initialize(ctx context.Context, input domain.InitializeInput) (*domain.InitializeResult, error) {
	if f.initializeFn == nil {
		return &domain.InitializeResult{
			Reference:  input.Reference,
			PaymentURL: "https://checkout.test/" + input.Reference,
		}, nil
	}
	return f.initializeFn(ctx, input)
}

func (f *fakeGateway) Verify(ctx context.Context, reference string) (*domain.Outcome, error) {
	if f.verifyFn == nil {
		return &domain.Outcome{Kind: domain.OutcomePending, Source: "verify"}, nil
	}
	return f.verifyFn(ctx, reference)
}

type fakeIdentity struct {
	email string
	err   error
}

func (f *fakeIdentity) GetUserEmail(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.email, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []kafka.PaymentEvent
}

func (p *capturingPublisher) PublishPaymentEvent(event kafka.PaymentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newTestUsecase(store *inmemory.Store, gateway *fakeGateway) *usecase.DefaultPaymentUsecase {
	if gateway == nil {
		gateway = &fakeGateway{}
	}
	return usecase.NewDefaultPaymentUsecase(
		store,
		store,
		gateway,
		&fakeIdentity{email: "buyer@example.com"},
		nil,
		nil,
		domain.DefaultRetryPolicy(),
		zap.NewNop(),
	)
}

func seedPendingPayment(store *inmemory.Store) *domain.Payment {
	store.SeedOrder(&domain.Order{
		ID:         "42",
		UserID:     "7",
		TotalPrice: 100.00,
		Status:     domain.OrderStatusPending,
		TrackingID: "0c9d3f4e-webhook-seed",
	})
	payment := &domain.Payment{
		ID:        "pay_42",
		OrderID:   "42",
		Amount:    100.00,
		Currency:  domain.CurrencyGHS,
		Method:    domain.MethodCard,
		Status:    domain.PaymentStatusPending,
		Reference: "42-7",
	}
	_ = store.CreatePayment(context.Background(), payment)
	return payment
}
