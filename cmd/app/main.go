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

	"foodorder/cmd"
	"foodorder/internal/adapters/out/postgres"
	"foodorder/internal/telemetry"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

const (
	serviceName    = "foodorder"
	serviceVersion = "0.1.0"
)

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, configs.OTelEndpoint, serviceName, serviceVersion)
	if err != nil {
		log.Fatalf("Failed to init tracer provider: %v", err)
	}
	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		log.Fatalf("Failed to init meter provider: %v", err)
	}

	if err = postgres.MigrateUp(configs.PostgresURL()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	gormDB, err := telemetry.OpenGorm(configs.PostgresURL())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{configs.RedisAddr},
		Password: configs.RedisPassword,
	})
	if err = redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, redisClient, logger)

	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	consumerDone := startConsumer(ctx, app, logger)

	e := server.NewEcho()
	e.GET("/metrics", echo.WrapHandler(metricsHandler))
	startWebServer(ctx, e, configs.HTTPPort, logger)

	<-consumerDone
	jobManager.StopAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for name, closeFn := range map[string]func() error{
		"producer": app.Close,
		"redis":    redisClient.Close,
	} {
		if err = closeFn(); err != nil {
			logger.Error("shutdown error", "resource", name, "error", err)
		}
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	_ = shutdownMeter(shutdownCtx)
	_ = shutdownTracer(shutdownCtx)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cartTTL, err := time.ParseDuration(envOr("CART_TTL", "24h"))
	if err != nil {
		log.Fatalf("Invalid CART_TTL: %v", err)
	}

	return cmd.Config{
		HTTPPort:               os.Getenv("HTTP_PORT"),
		DBHost:                 os.Getenv("DB_HOST"),
		DBPort:                 envOr("DB_PORT", "5432"),
		DBUser:                 os.Getenv("DB_USER"),
		DBPassword:             os.Getenv("DB_PASSWORD"),
		DBName:                 os.Getenv("DB_NAME"),
		DBSslMode:              envOr("DB_SSLMODE", "disable"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		CartTTL:                cartTTL,
		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaConsumerGroup:     envOr("KAFKA_CONSUMER_GROUP", "foodorder"),
		KafkaOrderChangedTopic: os.Getenv("KAFKA_ORDER_CHANGED_TOPIC"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		OTelEndpoint:           os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// startConsumer runs the order.changed consumer until ctx is cancelled.
func startConsumer(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) <-chan struct{} {
	done := make(chan struct{})
	consumer, handler := app.CreateOrderChangedConsumer()
	go func() {
		defer close(done)
		defer func() { _ = consumer.Close() }()
		if err := consumer.Consume(ctx, handler); err != nil {
			logger.Error("order changed consumer stopped", "error", err)
		}
	}()
	return done
}

func startWebServer(ctx context.Context, e *echo.Echo, port string, logger *slog.Logger) {
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
}
