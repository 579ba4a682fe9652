package models

import (
	"time"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
)

type OrderModel struct {
	ID         string             `gorm:"primaryKey;type:uuid"`
	UserID     string             `gorm:"index;not null"`
	TotalPrice float64            `gorm:"not null"`
	Status     domain.OrderStatus `gorm:"index;not null"`
	TrackingID string             `gorm:"uniqueIndex;type:uuid"`
	CreatedAt  time.Time          `gorm:"autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"autoUpdateTime"`
}

func (OrderModel) TableName() string {
	return "orders"
}
