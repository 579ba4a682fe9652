package usecase

import (
	"context"

	"github.com/jaevor/go-nanoid"
	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/kafka"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/metrics"
	paymentdto "github.com/osei-labs/marketplace-payment-service/internal/usecase/dto/payment"
)

type PaymentUsecase interface {
	InitiatePayment(ctx context.Context, input *paymentdto.InitiatePaymentInput) (*paymentdto.InitiatePaymentOutput, error)
	VerifyPayment(ctx context.Context, reference string) (*paymentdto.VerifyPaymentOutput, error)
	HandleWebhookEvent(ctx context.Context, input *paymentdto.WebhookEventInput) error
	RetryPayment(ctx context.Context, reference string) (*paymentdto.InitiatePaymentOutput, error)

	Reconcile(ctx context.Context, reference string, outcome domain.Outcome) error
}

// EmailResolver is the slice of the identity provider this service needs.
type EmailResolver interface {
	GetUserEmail(ctx context.Context, userID string) (string, error)
}

type EventPublisher interface {
	PublishPaymentEvent(event kafka.PaymentEvent) error
}

type DefaultPaymentUsecase struct {
	PaymentRepo domain.PaymentRepository
	OrderRepo   domain.OrderRepository
	Gateway     domain.GatewayClient
	Identity    EmailResolver
	Publisher   EventPublisher
	Metrics     *metrics.PaymentMetrics
	Retry       domain.RetryPolicy
	Logger      *zap.Logger

	newEventID func() string
}

func NewDefaultPaymentUsecase(
	paymentRepo domain.PaymentRepository,
	orderRepo domain.OrderRepository,
	gateway domain.GatewayClient,
	identity EmailResolver,
	eventPublisher EventPublisher,
	paymentMetrics *metrics.PaymentMetrics,
	retryPolicy domain.RetryPolicy,
	logger *zap.Logger) *DefaultPaymentUsecase {

	if logger == nil {
		logger = zap.NewNop()
	}

	// nanoid.Standard only errors for lengths outside [2, 255]
	newEventID, err := nanoid.Standard(15)
	if err != nil {
		panic(err)
	}

	return &DefaultPaymentUsecase{
		PaymentRepo: paymentRepo,
		OrderRepo:   orderRepo,
		Gateway:     gateway,
		Identity:    identity,
		Publisher:   eventPublisher,
		Metrics:     paymentMetrics,
		Retry:       retryPolicy,
		Logger:      logger,
		newEventID:  newEventID,
	}
}
