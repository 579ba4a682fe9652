package domain

import (
	"fmt"
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "Pending"
	PaymentStatusCompleted PaymentStatus = "Completed"
	PaymentStatusFailed    PaymentStatus = "Failed"
	PaymentStatusRefunded  PaymentStatus = "Refunded"
)

type Currency string

const (
	CurrencyGHS Currency = "GHS"
	CurrencyNGN Currency = "NGN"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodMobileMoney  PaymentMethod = "mobile_money"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodUSSD         PaymentMethod = "ussd"
	MethodQR           PaymentMethod = "qr"
)

// Payment is the single payment attempt attached to an order. Amount is kept
// in decimal major units; the gateway client converts to minor units on the
// wire. Reference is immutable after creation.
type Payment struct {
	ID            string
	OrderID       string
	Amount        float64
	Currency      Currency
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
	Reference     string
	Metadata      map[string]any
	RetryCount    int
	LastRetryAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ValidCurrency(c Currency) bool {
	switch c {
	case CurrencyGHS, CurrencyNGN, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCard, MethodMobileMoney, MethodBankTransfer, MethodUSSD, MethodQR:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is expected, except the
// explicitly modeled Completed -> Refunded edge.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusRefunded
}

// BuildReference produces the canonical reference correlating a payment with
// the gateway transaction: "{orderID}-{userID}".
func BuildReference(orderID, userID string) string {
	return fmt.Sprintf("%s-%s", orderID, userID)
}

// ValidateReference checks the canonical form structurally: two non-empty
// segments, the left one being the order id.
func ValidateReference(reference, orderID string) error {
	rest, found := strings.CutPrefix(reference, orderID+"-")
	if !found || rest == "" {
		return ErrInvalidReference
	}
	return nil
}

// MergeMetadata merges src into dst additively: prior keys survive unless
// src rewrites them (last writer wins per key). dst may be nil.
func MergeMetadata(dst, src map[string]any) map[string]any {
	merged := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		merged[k] = v
	}
	for k, v := range src {
		merged[k] = v
	}
	return merged
}
