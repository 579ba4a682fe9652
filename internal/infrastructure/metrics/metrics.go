package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics contains all payment lifecycle metrics
type PaymentMetrics struct {
	PaymentsInitiatedTotal       prometheus.CounterVec
	PaymentsInitiatedAmountTotal prometheus.CounterVec

	PaymentsCompletedTotal       prometheus.CounterVec
	PaymentsCompletedAmountTotal prometheus.CounterVec

	PaymentsFailedTotal   prometheus.CounterVec
	PaymentsRefundedTotal prometheus.CounterVec

	ReconcileConflictsTotal prometheus.CounterVec
	ReconcileDuration       prometheus.HistogramVec

	WebhookRejectedTotal prometheus.Counter
	GatewayErrorsTotal   prometheus.CounterVec
	RetryDeniedTotal     prometheus.CounterVec
}

// NewPaymentMetrics creates a new metrics instance
func NewPaymentMetrics() *PaymentMetrics {
	return &PaymentMetrics{
		PaymentsInitiatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_initiated_total",
				Help: "Total number of initiated payments",
			},
			[]string{"currency", "method"},
		),

		PaymentsInitiatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_initiated_amount_total",
				Help: "Total amount of initiated payments in major units",
			},
			[]string{"currency"},
		),

		PaymentsCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_total",
				Help: "Total number of payments confirmed by the gateway",
			},
			[]string{"currency", "method", "source"},
		),

		PaymentsCompletedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_completed_amount_total",
				Help: "Total amount of completed payments in major units",
			},
			[]string{"currency"},
		),

		PaymentsFailedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_failed_total",
				Help: "Total number of payments reported failed by the gateway",
			},
			[]string{"currency", "method", "source"},
		),

		PaymentsRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payments_refunded_total",
				Help: "Total number of refunded payments",
			},
			[]string{"currency"},
		),

		ReconcileConflictsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_reconcile_conflicts_total",
				Help: "Outcomes that conflicted with an existing terminal state",
			},
			[]string{"outcome", "source"},
		),

		ReconcileDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "payment_reconcile_duration_seconds",
				Help:    "Time spent applying gateway outcomes",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"outcome", "source"},
		),

		WebhookRejectedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "payment_webhook_rejected_total",
				Help: "Webhook deliveries rejected for a bad or missing signature",
			},
		),

		GatewayErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_gateway_errors_total",
				Help: "Gateway call failures by operation and classification",
			},
			[]string{"operation", "kind"},
		),

		RetryDeniedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_retry_denied_total",
				Help: "Retry attempts denied by the cap or cooldown",
			},
			[]string{"reason"},
		),
	}
}

// RecordPaymentInitiated records a freshly initiated payment
func (m *PaymentMetrics) RecordPaymentInitiated(currency, method string, amount float64) {
	m.PaymentsInitiatedTotal.WithLabelValues(currency, method).Inc()
	m.PaymentsInitiatedAmountTotal.WithLabelValues(currency).Add(amount)
}

// RecordPaymentCompleted records a confirmed payment
func (m *PaymentMetrics) RecordPaymentCompleted(currency, method, source string, amount float64) {
	m.PaymentsCompletedTotal.WithLabelValues(currency, method, source).Inc()
	m.PaymentsCompletedAmountTotal.WithLabelValues(currency).Add(amount)
}

// RecordPaymentFailed records a gateway-reported failure
func (m *PaymentMetrics) RecordPaymentFailed(currency, method, source string) {
	m.PaymentsFailedTotal.WithLabelValues(currency, method, source).Inc()
}

// RecordPaymentRefunded records a processed refund
func (m *PaymentMetrics) RecordPaymentRefunded(currency string) {
	m.PaymentsRefundedTotal.WithLabelValues(currency).Inc()
}

// RecordReconcileConflict records a terminal-state mismatch
func (m *PaymentMetrics) RecordReconcileConflict(outcome, source string) {
	m.ReconcileConflictsTotal.WithLabelValues(outcome, source).Inc()
}

// RecordReconcileDuration records time spent applying an outcome
func (m *PaymentMetrics) RecordReconcileDuration(outcome, source string, seconds float64) {
	m.ReconcileDuration.WithLabelValues(outcome, source).Observe(seconds)
}

// RecordWebhookRejected records an invalid-signature delivery
func (m *PaymentMetrics) RecordWebhookRejected() {
	m.WebhookRejectedTotal.Inc()
}

// RecordGatewayError records a classified gateway failure
func (m *PaymentMetrics) RecordGatewayError(operation, kind string) {
	m.GatewayErrorsTotal.WithLabelValues(operation, kind).Inc()
}

// RecordRetryDenied records a denied retry attempt
func (m *PaymentMetrics) RecordRetryDenied(reason string) {
	m.RetryDeniedTotal.WithLabelValues(reason).Inc()
}
