package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"workzen/internal/events"
	"workzen/internal/messaging/kafka"
	"workzen/internal/messaging/kafka/consumer"
	"workzen/internal/payrun"
	"workzen/internal/salarystructure"
	"workzen/internal/shared/connection"

	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	structureRepo := salarystructure.NewRepository(gormDB)
	structureService := salarystructure.NewService(sqlDB, structureRepo, logger)
	payrunRepo := payrun.NewRepository(gormDB)
	payrunService := payrun.NewService(sqlDB, payrunRepo, outboxRepo, structureService, logger)

	lifecycleReader := connection.NewKafkaReader(
		kafkaBroker,
		"workzen-salary-structure",
		events.EmployeeCreatedTopic,
	)
	defer lifecycleReader.Close()

	payrunReader := connection.NewKafkaReader(
		kafkaBroker,
		"workzen-payrun-runner",
		events.PayrunProcessRequestedTopic,
	)
	defer payrunReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, structureService, logger)
	go consumer.ConsumePayrunProcessRequested(ctx, payrunReader, payrunService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
