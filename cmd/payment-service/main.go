package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/osei-labs/marketplace-payment-service/internal/client"
	"github.com/osei-labs/marketplace-payment-service/internal/config"
	httpdelivery "github.com/osei-labs/marketplace-payment-service/internal/delivery/http"
	"github.com/osei-labs/marketplace-payment-service/internal/delivery/http/handlers"
	publisher "github.com/osei-labs/marketplace-payment-service/internal/infrastructure/kafka"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/logging"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/metrics"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/migrate"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/paystack"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/postgres/repository"
	"github.com/osei-labs/marketplace-payment-service/internal/infrastructure/signature"
	"github.com/osei-labs/marketplace-payment-service/internal/domain"
	usecase "github.com/osei-labs/marketplace-payment-service/internal/usecase/payment"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	logger, err := logging.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.PaymentDB.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.PaymentDB.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Init repositories
	paymentRepo := repository.NewDefaultPaymentRepository(db)
	orderRepo := repository.NewDefaultOrderRepository(db)

	// Init kafka payment event publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	eventPublisher := publisher.NewPaymentEventPublisher(brokers, cfg.KafkaService.Topic)
	defer eventPublisher.Close()

	// Init identity client
	identityClient := client.NewIdentityClient(fmt.Sprintf("%s:%s", cfg.IdentityService.Host, cfg.IdentityService.Port))

	// Init gateway client and webhook verifier
	gatewayClient := paystack.NewClient(
		cfg.Paystack.BaseURL,
		cfg.Paystack.SecretKey,
		time.Duration(cfg.Paystack.TimeoutSeconds)*time.Second,
		logger,
	)
	verifier := signature.NewVerifier(cfg.Paystack.SecretKey)

	paymentMetrics := metrics.NewPaymentMetrics()

	retryPolicy := domain.RetryPolicy{
		MaxAttempts: cfg.RetryConfig.MaxAttempts,
		Cooldown:    time.Duration(cfg.RetryConfig.CooldownSeconds) * time.Second,
	}

	// Init payment usecase
	paymentUsecase := usecase.NewDefaultPaymentUsecase(
		paymentRepo,
		orderRepo,
		gatewayClient,
		identityClient,
		eventPublisher,
		paymentMetrics,
		retryPolicy,
		logger,
	)

	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, logger)
	webhookHandler := handlers.NewWebhookHandler(paymentUsecase, verifier, paymentMetrics, logger)

	router := httpdelivery.NewRouter(paymentHandler, webhookHandler)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	logger.Info("payment service started", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := router.Run(addr); err != nil {
		log.Fatalf("failed to serve: %v\n", err)
	}
}
