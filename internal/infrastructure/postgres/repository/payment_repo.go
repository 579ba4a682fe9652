package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/mappers"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/models"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	paymentModel := mappers.ToGORMPayment(payment)
	if err := r.DB.WithContext(ctx).Create(paymentModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrPaymentExists
		}
		return fmt.Errorf("creating payment: %w", err)
	}
	return nil
}

func (r *DefaultPaymentRepository) GetPaymentByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	var paymentModel models.PaymentModel
	if err := r.DB.WithContext(ctx).First(&paymentModel, "reference = ?", reference).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&paymentModel), nil
}

func (r *DefaultPaymentRepository) GetPaymentByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	var paymentModel models.PaymentModel
	if err := r.DB.WithContext(ctx).First(&paymentModel, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayment(&paymentModel), nil
}

// ReconcileTx locks the payment row and its order row with SELECT ... FOR
// UPDATE inside a single transaction, so the read-check-write sequence of the
// reconciliation engine cannot interleave with a concurrent caller for the
// same reference. Rows of other references stay untouched.
func (r *DefaultPaymentRepository) ReconcileTx(ctx context.Context, reference string, apply domain.ReconcileFunc) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paymentModel models.PaymentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&paymentModel, "reference = ?", reference).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPaymentNotFound
			}
			return fmt.Errorf("locking payment %s: %w", reference, err)
		}

		var orderModel models.OrderModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&orderModel, "id = ?", paymentModel.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("locking order %s: %w", paymentModel.OrderID, err)
		}

		payment := mappers.ToDomainPayment(&paymentModel)
		order := mappers.ToDomainOrder(&orderModel)

		dirty, err := apply(payment, order)
		if err != nil {
			return err
		}
		if !dirty {
			return nil
		}

		if err := tx.Save(mappers.ToGORMPayment(payment)).Error; err != nil {
			return fmt.Errorf("saving payment %s: %w", reference, err)
		}
		if err := tx.Save(mappers.ToGORMOrder(order)).Error; err != nil {
			return fmt.Errorf("saving order %s: %w", order.ID, err)
		}
		return nil
	})
}

// RegisterRetry performs the guarded increment in one statement: the cap and
// cooldown conditions live in the WHERE clause, so two near-simultaneous
// callers cannot both pass the check.
func (r *DefaultPaymentRepository) RegisterRetry(ctx context.Context, reference string, now time.Time, maxAttempts int, cooldown time.Duration) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.PaymentModel{}).
		Where("reference = ? AND retry_count < ? AND (last_retry_at IS NULL OR last_retry_at <= ?)",
			reference, maxAttempts, now.Add(-cooldown)).
		Updates(map[string]any{
			"retry_count":   gorm.Expr("retry_count + 1"),
			"last_retry_at": now,
		})
	if res.Error != nil {
		return false, fmt.Errorf("registering retry for %s: %w", reference, res.Error)
	}
	return res.RowsAffected == 1, nil
}
