package domain

import (
	"context"
	"time"
)

// ReconcileFunc mutates the locked payment and its order in memory. It
// returns dirty=false when the call is an idempotent no-op and nothing must
// be written back.
type ReconcileFunc func(p *Payment, o *Order) (dirty bool, err error)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	GetPaymentByReference(ctx context.Context, reference string) (*Payment, error)
	GetPaymentByOrderID(ctx context.Context, orderID string) (*Payment, error)

	// ReconcileTx runs apply under row-level locks on the payment and its
	// order inside a single transaction. Both mutations become visible
	// together or not at all. Concurrent calls for the same reference
	// serialize; different references proceed in parallel.
	ReconcileTx(ctx context.Context, reference string, apply ReconcileFunc) error

	// RegisterRetry atomically increments retry bookkeeping, guarded by the
	// cap and cooldown so two concurrent callers cannot both pass the check.
	// Returns false when the guard denied the increment.
	RegisterRetry(ctx context.Context, reference string, now time.Time, maxAttempts int, cooldown time.Duration) (bool, error)
}

type OrderRepository interface {
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
}
