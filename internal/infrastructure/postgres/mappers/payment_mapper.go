package mappers

import (
	"encoding/json"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	var metadata map[string]any
	if model.MetadataJSON != "" {
		_ = json.Unmarshal([]byte(model.MetadataJSON), &metadata)
	}

	transactionID := ""
	if model.TransactionID != nil {
		transactionID = *model.TransactionID
	}

	return &domain.Payment{
		ID:            model.ID,
		OrderID:       model.OrderID,
		Amount:        model.Amount,
		Currency:      model.Currency,
		Method:        model.Method,
		Status:        model.Status,
		TransactionID: transactionID,
		Reference:     model.Reference,
		Metadata:      metadata,
		RetryCount:    model.RetryCount,
		LastRetryAt:   model.LastRetryAt,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	metadataJSON := ""
	if payment.Metadata != nil {
		if raw, err := json.Marshal(payment.Metadata); err == nil {
			metadataJSON = string(raw)
		}
	}

	var transactionID *string
	if payment.TransactionID != "" {
		transactionID = &payment.TransactionID
	}

	return &models.PaymentModel{
		ID:            payment.ID,
		OrderID:       payment.OrderID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Method:        payment.Method,
		Status:        payment.Status,
		TransactionID: transactionID,
		Reference:     payment.Reference,
		MetadataJSON:  metadataJSON,
		RetryCount:    payment.RetryCount,
		LastRetryAt:   payment.LastRetryAt,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
