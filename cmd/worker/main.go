package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/app"
	notificationCommands "github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/convert"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/studyplanner/pkg/config"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Setup logger
	logger := observability.LoggerFromEnv()
	logger.Info("starting studyplanner worker")

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewPrometheusMetrics(registry)

	container, err := app.NewContainer(ctx, cfg, logger, app.Options{Metrics: metrics})
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()
	health := container.HealthChecks()

	// Create event publisher
	var publisher eventbus.Publisher
	rabbitPublisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			publisher = eventbus.NewNoopPublisher(logger)
		} else {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
	} else {
		health.Register("rabbitmq", observability.PingChecker("rabbitmq", observability.HealthStatusDegraded, rabbitPublisher.Ping))
		publisher = eventbus.NewBreakerPublisher(rabbitPublisher, eventbus.BreakerConfig{
			Name:             "rabbitmq-publisher",
			FailureThreshold: convert.IntToUint32Clamped(cfg.PublisherBreakerFailures),
			Timeout:          cfg.PublisherBreakerTimeout,
			MaxRequests:      1,
		}, metrics, logger)
	}
	defer publisher.Close()
	logger.Info("event publisher initialized")

	// Create outbox processor
	var processor *outbox.Processor
	if cfg.OutboxProcessorEnabled {
		processor = outbox.NewProcessor(container.OutboxRepo, publisher, container.OutboxConfig(), metrics, logger)
		if err := processor.Start(ctx); err != nil {
			logger.Error("failed to start outbox processor", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Info("outbox processor disabled")
	}

	// Consume coursework events so clash checks follow every change.
	if rabbitPublisher != nil {
		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: eventbus.DefaultConsumerQueueName,
			Metrics:   metrics,
			Logger:    logger,
		}, eventbus.NewConsumerRegistry(logger))
		if err != nil {
			logger.Error("failed to create event consumer", "error", err)
			os.Exit(1)
		}
		defer consumer.Close()
		consumer.RegisterConsumer(container.ClashSubscriber)

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("event consumer stopped", "error", err)
			}
		}()
	}

	// Periodic deadline reminders
	if cfg.ReminderCheckInterval > 0 {
		go runReminders(ctx, container.GenerateRemindersHandler, cfg.ReminderCheckInterval, logger)
	}

	if cfg.WorkerHealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			report := health.Check(checkCtx)
			body, err := report.JSON()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if report.Status == observability.HealthStatusUnhealthy {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			_, _ = w.Write(body)
		})
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("health server error", "error", err)
			}
		}()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		}()
	}

	// Wait for shutdown
	<-ctx.Done()
	logger.Info("shutting down worker")

	if processor != nil {
		processor.Stop()
		stats := processor.GetStats()
		logger.Info("outbox stats",
			"published", stats.PublishedCount,
			"failed", stats.FailedCount,
			"dead", stats.DeadCount,
		)
	}
	logger.Info("worker stopped")

	fmt.Println("Goodbye!")
}

func runReminders(ctx context.Context, handler *notificationCommands.GenerateRemindersHandler, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check := func() {
		created, err := handler.Handle(ctx, notificationCommands.GenerateRemindersCommand{})
		if err != nil {
			logger.Error("reminder check failed", "error", err)
			return
		}
		if len(created) > 0 {
			logger.Info("reminders created", "count", len(created))
		}
	}

	check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}
