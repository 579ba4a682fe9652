package postgres

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/osei-labs/marketplace-payment-service/internal/config"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/models"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.OrderModel{}, &models.PaymentModel{})

	return db
}
