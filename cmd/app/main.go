package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ordering/cmd"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultOutboxBatchSize = 100
	shutdownTimeout        = 10 * time.Second
)

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zapLogger, err := logger.New(configs.LogMode)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, zapLogger); err != nil {
		zapLogger.Fatal("ordering service stopped", zap.Error(err))
	}
}

func run(ctx context.Context, configs cmd.Config, zapLogger *zap.Logger) error {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app := cmd.NewCompositionRoot(configs, gormDB, zapLogger, registry)

	broker, err := app.CreateBroker()
	if err != nil {
		return err
	}
	defer func() {
		if err := broker.Close(); err != nil {
			zapLogger.Warn("close broker", zap.Error(err))
		}
	}()

	jobManager, err := app.CreateJobManager(broker.Publisher)
	if err != nil {
		return err
	}

	e, err := app.CreateEcho(broker.Health)
	if err != nil {
		return err
	}
	e.Logger.SetLevel(log.INFO)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zapLogger.Info("http server started", zap.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := jobManager.StartAll(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		jobManager.StopAll()
		return nil
	})

	for _, consumer := range broker.Consumers {
		g.Go(func() error {
			return consumer.Run(ctx)
		})
	}

	return g.Wait()
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:                             envOrDefault("HTTP_PORT", "8080"),
		DBHost:                               os.Getenv("DB_HOST"),
		DBPort:                               envOrDefault("DB_PORT", "5432"),
		DBUser:                               os.Getenv("DB_USER"),
		DBPassword:                           os.Getenv("DB_PASSWORD"),
		DBName:                               os.Getenv("DB_NAME"),
		DBSslMode:                            envOrDefault("DB_SSLMODE", "disable"),
		LogMode:                              envOrDefault("LOG_MODE", "production"),
		Broker:                               envOrDefault("BROKER", cmd.BrokerKafka),
		KafkaHost:                            os.Getenv("KAFKA_HOST"),
		KafkaConsumerGroup:                   envOrDefault("KAFKA_CONSUMER_GROUP", "ordering"),
		KafkaPaymentRequestTopic:             envOrDefault("KAFKA_PAYMENT_REQUEST_TOPIC", "payment-request"),
		KafkaRestaurantApprovalRequestTopic:  envOrDefault("KAFKA_RESTAURANT_APPROVAL_REQUEST_TOPIC", "restaurant-approval-request"),
		KafkaPaymentResponseTopic:            envOrDefault("KAFKA_PAYMENT_RESPONSE_TOPIC", cmd.PaymentResponseQueue),
		KafkaRestaurantApprovalResponseTopic: envOrDefault("KAFKA_RESTAURANT_APPROVAL_RESPONSE_TOPIC", cmd.RestaurantApprovalResponseQueue),
		RabbitMQURL:                          os.Getenv("RABBITMQ_URL"),
		RabbitMQExchange:                     envOrDefault("RABBITMQ_EXCHANGE", "ordering"),
		OutboxBatchSize:                      intOrDefault("OUTBOX_BATCH_SIZE", defaultOutboxBatchSize),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}
