package models

import (
	"time"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
)

type PaymentModel struct {
	ID            string               `gorm:"primaryKey"`
	OrderID       string               `gorm:"uniqueIndex;type:uuid;not null"`
	Order         OrderModel           `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	Amount        float64              `gorm:"not null"`
	Currency      domain.Currency      `gorm:"not null"`
	Method        domain.PaymentMethod `gorm:"not null"`
	Status        domain.PaymentStatus `gorm:"index;not null"`
	TransactionID *string              `gorm:"uniqueIndex"`
	Reference     string               `gorm:"uniqueIndex;not null"`
	MetadataJSON  string               `gorm:"type:jsonb"`
	RetryCount    int                  `gorm:"not null;default:0"`
	LastRetryAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PaymentModel) TableName() string {
	return "payments"
}
