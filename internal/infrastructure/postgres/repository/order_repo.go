package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/models"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.WithContext(ctx).First(&orderModel, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&orderModel), nil
}
