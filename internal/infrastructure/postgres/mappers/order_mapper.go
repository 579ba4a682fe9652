package mappers

import (
	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:         model.ID,
		UserID:     model.UserID,
		TotalPrice: model.TotalPrice,
		Status:     model.Status,
		TrackingID: model.TrackingID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:         order.ID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		TrackingID: order.TrackingID,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}
