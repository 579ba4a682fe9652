package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is created by checkout and only moves to paid through the
// reconciliation engine.
type Order struct {
	ID         string
	UserID     string
	TotalPrice float64
	Status     OrderStatus
	TrackingID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
