package domain

import "context"

type OutcomeKind string

const (
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeFailure  OutcomeKind = "failure"
	OutcomeRefunded OutcomeKind = "refunded"
	// OutcomePending means the gateway has not settled the charge yet.
	// The reconciliation engine is never invoked with it.
	OutcomePending OutcomeKind = "pending"
)

// Outcome is a normalized gateway result, delivered either by the verify
// call or by a webhook. Raw carries the unmodified provider payload for the
// audit trail.
type Outcome struct {
	Kind          OutcomeKind
	TransactionID string
	Reason        string
	Source        string
	Raw           map[string]any
}

type InitializeInput struct {
	Reference string
	Email     string
	Amount    float64
	Currency  Currency
	Method    PaymentMethod
}

type InitializeResult struct {
	Reference  string
	PaymentURL string
	AccessCode string
}

// GatewayClient wraps the external payment provider. Both calls are bound by
// the client's request timeout; failures are classified into
// ErrGatewayUnavailable, ErrGatewayTimeout and ErrGatewayRejected.
type GatewayClient interface {
	Initialize(ctx context.Context, input InitializeInput) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (*Outcome, error)
}
