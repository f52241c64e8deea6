package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/barbearia-digital/booking-ledger/internal/config"
	"github.com/barbearia-digital/booking-ledger/internal/data/postgres"
	"github.com/barbearia-digital/booking-ledger/internal/logger"
	"github.com/barbearia-digital/booking-ledger/internal/notification_worker/consumer"
	"github.com/barbearia-digital/booking-ledger/internal/notification_worker/outbox_poller"
	"github.com/barbearia-digital/booking-ledger/internal/notification_worker/service"
	"github.com/barbearia-digital/booking-ledger/internal/notification_worker/whatsapp"
	"github.com/barbearia-digital/booking-ledger/internal/platform/messaging/consumers"
	"github.com/barbearia-digital/booking-ledger/internal/platform/messaging/producers"
	"github.com/barbearia-digital/booking-ledger/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("notification_worker")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	log.Info("Starting Notification Worker",
		"app_name", cfg.Application.Name,
		"env", cfg.Application.Env,
	)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	apptRepo := postgres.NewAppointmentRepository(log, postgresDB)
	outboxRepo := postgres.NewOutboxRepository(log, postgresDB)

	// Initialize Kafka consumer
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	// Initialize Kafka intent producer for the outbox poller
	intentProducer, err := producers.NewNotificationIntentProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize notification intent Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka DLQ producer
	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ Kafka producer", "error", err)
		os.Exit(1)
	}
	// dlqProducer might be nil if DLQTopic is not configured. Handler should be nil-safe.

	// Initialize the WhatsApp sender and dispatch service
	sender := whatsapp.NewSender(log, &cfg.WhatsApp)
	baseDispatch := service.NewDispatchService(log, &cfg.WhatsApp, apptRepo, sender)
	dispatchService, err := service.NewWorkerPoolDispatchService(
		baseDispatch,
		service.WorkerPoolConfig{Size: cfg.WorkerPool.Size},
		log,
	)
	if err != nil {
		log.Error("Failed to initialize dispatch worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize notification event handler
	notificationEventHandler := consumer.NewNotificationEventHandler(
		log,
		dispatchService,
		dlqProducer,
	)

	// Initialize outbox poller
	intentPublisher := outbox_poller.NewIntentPublisher(
		outboxRepo,
		intentProducer,
		log,
	)
	poller := outbox_poller.NewPoller(
		&cfg.Outbox,
		outboxRepo,
		intentPublisher,
		log,
	)

	// Create error channel for service errors
	errChan := make(chan error, 2)

	// Create wait group for graceful shutdown
	var wg sync.WaitGroup

	// Start Kafka consumer in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting Kafka consumer",
			"topic", cfg.Kafka.NotificationTopic,
			"group", cfg.Kafka.ConsumerGroup,
		)
		if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.NotificationTopic, cfg.Kafka.ConsumerGroup, notificationEventHandler.HandleMessage); err != nil {
			errChan <- fmt.Errorf("kafka consumer error: %w", err)
		}
	}()

	// Start outbox poller in a goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("Starting Outbox Poller",
			"interval", cfg.Outbox.PollingInterval.String(),
			"batch_size", cfg.Outbox.BatchSize,
		)
		poller.Start(appCtx)
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serviceErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Service error occurred", "error", err)
		serviceErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Shutdown the worker pool
	log.Info("Shutting down worker pool", "running_workers", dispatchService.Running())
	dispatchService.Shutdown()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Wait for all goroutines to finish
	log.Info("Waiting for services to stop...")
	wgChan := make(chan struct{})
	go func() {
		wg.Wait()
		close(wgChan)
	}()

	select {
	case <-wgChan:
		log.Info("All services stopped successfully")
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout reached, forcing exit")
	}

	// Close Kafka producers
	if err = intentProducer.Close(); err != nil {
		log.Error("Error closing notification intent Kafka producer", "error", err)
	}
	if dlqProducer != nil { // dlqProducer can be nil if DLQTopic was not configured
		if err = dlqProducer.Close(); err != nil {
			log.Error("Error closing DLQ Kafka producer", "error", err)
		}
	}

	// Close Kafka consumer
	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	// Final status
	if serviceErr != nil {
		log.Error("Notification Worker shutdown with errors", "error", serviceErr)
	}
	if err != nil {
		log.Error("Notification Worker shutdown completed with errors")
	} else {
		log.Info("Notification Worker shutdown completed successfully")
	}
}
