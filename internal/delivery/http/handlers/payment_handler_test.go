package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/inmemory"
)

func TestInitiatePaymentEndpoint(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{
		ID:         "42",
		UserID:     "7",
		TotalPrice: 100.00,
		Status:     domain.OrderStatusPending,
	})
	router := newTestRouter(store, nil)

	body := []byte(`{"order_id":"42","amount":100.00,"currency":"GHS","payment_method":"card"}`)
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		PaymentURL    string `json:"payment_url"`
		PaymentMethod string `json:"payment_method"`
		Currency      string `json:"currency"`
		Reference     string `json:"reference"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42-7", resp.Reference)
	assert.Equal(t, "https://checkout.test/42-7", resp.PaymentURL)
	assert.Equal(t, "card", resp.PaymentMethod)
	assert.Equal(t, "GHS", resp.Currency)
}

func TestInitiatePaymentEndpoint_BadRequest(t *testing.T) {
	router := newTestRouter(inmemory.NewStore(), nil)

	tests := []struct {
		name string
		body string
	}{
		{"missing order id", `{"amount":100.00}`},
		{"zero amount", `{"order_id":"42","amount":0}`},
		{"not json", `order_id=42`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader([]byte(tc.body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestInitiatePaymentEndpoint_DuplicateAttempt(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	router := newTestRouter(store, nil)

	body := []byte(`{"order_id":"42","amount":100.00}`)
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	gateway := &stubGateway{
		verifyFn: func(context.Context, string) (*domain.Outcome, error) {
			return &domain.Outcome{
				Kind:          domain.OutcomeSuccess,
				TransactionID: "txn_1",
				Source:        "verify",
			}, nil
		},
	}
	router := newTestRouter(store, gateway)

	req := httptest.NewRequest(http.MethodGet, "/payments/verify/42-7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Payment verified successfully")

	payment, err := store.GetPaymentByReference(context.Background(), "42-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
}

func TestVerifyPaymentEndpoint_NotConfirmed(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	router := newTestRouter(store, nil) // stub gateway reports pending

	req := httptest.NewRequest(http.MethodGet, "/payments/verify/42-7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentEndpoint_UnknownReference(t *testing.T) {
	router := newTestRouter(inmemory.NewStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/payments/verify/99-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyPaymentEndpoint_GatewayTimeout(t *testing.T) {
	store := inmemory.NewStore()
	seedPendingPayment(store)
	gateway := &stubGateway{
		verifyFn: func(context.Context, string) (*domain.Outcome, error) {
			return nil, domain.ErrGatewayTimeout
		},
	}
	router := newTestRouter(store, gateway)

	req := httptest.NewRequest(http.MethodGet, "/payments/verify/42-7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestRetryPaymentEndpoint(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{ID: "42", UserID: "7", Status: domain.OrderStatusPending})
	_ = store.CreatePayment(context.Background(), &domain.Payment{
		ID:        "pay_42",
		OrderID:   "42",
		Amount:    100.00,
		Currency:  domain.CurrencyGHS,
		Method:    domain.MethodCard,
		Status:    domain.PaymentStatusFailed,
		Reference: "42-7",
	})
	router := newTestRouter(store, nil)

	req := httptest.NewRequest(http.MethodPost, "/payments/42-7/retry", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	payment, err := store.GetPaymentByReference(context.Background(), "42-7")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
}

func TestRetryPaymentEndpoint_LimitReached(t *testing.T) {
	store := inmemory.NewStore()
	store.SeedOrder(&domain.Order{ID: "42", UserID: "7", Status: domain.OrderStatusPending})
	old := time.Now().Add(-time.Hour)
	_ = store.CreatePayment(context.Background(), &domain.Payment{
		ID:          "pay_42",
		OrderID:     "42",
		Amount:      100.00,
		Currency:    domain.CurrencyGHS,
		Method:      domain.MethodCard,
		Status:      domain.PaymentStatusFailed,
		Reference:   "42-7",
		RetryCount:  domain.DefaultMaxRetryAttempts,
		LastRetryAt: &old,
	})
	router := newTestRouter(store, nil)

	req := httptest.NewRequest(http.MethodPost, "/payments/42-7/retry", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(inmemory.NewStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
