package domain

import "time"

const (
	DefaultMaxRetryAttempts = 3
	DefaultRetryCooldown    = 5 * time.Minute
)

// RetryPolicy bounds repeated payment attempts per order.
type RetryPolicy struct {
	MaxAttempts int
	Cooldown    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxRetryAttempts,
		Cooldown:    DefaultRetryCooldown,
	}
}

// CanRetry is the advisory check; the authoritative guard is the atomic
// increment in PaymentRepository.RegisterRetry.
func (rp RetryPolicy) CanRetry(p *Payment, now time.Time) error {
	if p.RetryCount >= rp.MaxAttempts {
		return ErrRetryLimitReached
	}
	if p.LastRetryAt != nil && now.Sub(*p.LastRetryAt) < rp.Cooldown {
		return ErrRetryCooldownActive
	}
	return nil
}
