package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/threepl-platform/inbound-service/pkg/cloudevents"
	"github.com/threepl-platform/inbound-service/pkg/kafka"
	"github.com/threepl-platform/inbound-service/pkg/logging"
	"github.com/threepl-platform/inbound-service/pkg/metrics"
	"github.com/threepl-platform/inbound-service/pkg/middleware"
	"github.com/threepl-platform/inbound-service/pkg/mongodb"
	"github.com/threepl-platform/inbound-service/pkg/tracing"

	apihttp "github.com/threepl-platform/inbound-service/internal/api/http"
	"github.com/threepl-platform/inbound-service/internal/application"
	kafkaInfra "github.com/threepl-platform/inbound-service/internal/infrastructure/kafka"
	mongoRepo "github.com/threepl-platform/inbound-service/internal/infrastructure/mongodb"
)

const serviceName = "inbound-service"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting inbound-service API")

	config := loadConfig()
	ctx := context.Background()

	// OpenTelemetry tracing
	tracingConfig := tracing.DefaultConfig(serviceName)
	tracingConfig.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317")
	tracingConfig.Environment = getEnv("ENVIRONMENT", "development")
	tracingConfig.Enabled = getEnv("TRACING_ENABLED", "true") == "true"

	tracerProvider, err := tracing.Initialize(ctx, tracingConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize tracing")
	} else if tracerProvider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
				logger.WithError(err).Error("Failed to shutdown tracer")
			}
		}()
		logger.Info("Tracing initialized", "endpoint", tracingConfig.OTLPEndpoint)
	}

	// Prometheus metrics
	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	// MongoDB with instrumentation
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	instrumentedMongo := mongodb.NewInstrumentedClient(mongoClient, m, logger)
	defer instrumentedMongo.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Kafka producer behind a circuit breaker
	producer := kafka.NewProductionProducer(config.Kafka, m, logger)
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	eventFactory := cloudevents.NewEventFactory(cloudevents.SourceInbound)
	publisher := kafkaInfra.NewEventPublisher(producer, eventFactory)

	// Repositories
	orders := mongoRepo.NewOrderRepository(instrumentedMongo)
	pallets := mongoRepo.NewPalletRepository(instrumentedMongo)
	locations := mongoRepo.NewLocationRepository(instrumentedMongo)
	assignments := mongoRepo.NewPutawayRepository(instrumentedMongo)
	scanEvents := mongoRepo.NewScanEventRepository(instrumentedMongo)
	scanSessions := mongoRepo.NewScanSessionRepository(instrumentedMongo)
	damageReports := mongoRepo.NewDamageRepository(instrumentedMongo)
	clients := mongoRepo.NewClientRepository(instrumentedMongo)

	// Application services
	receivingService := application.NewReceivingService(orders, pallets, clients, publisher, logger)
	putawayService := application.NewPutawayService(assignments, orders, locations, publisher, logger)
	scanService := application.NewScanService(scanSessions, scanEvents, orders, pallets, locations, putawayService, publisher, logger)
	damageService := application.NewDamageService(damageReports, orders, publisher, logger)
	clientService := application.NewClientService(clients, logger)
	dashboardService := application.NewDashboardService(orders, damageReports, assignments, logger)

	// Gin router with standard middleware
	router := gin.New()
	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)
	router.Use(middleware.MetricsMiddleware(m))
	router.Use(middleware.SimpleTracingMiddleware(serviceName))
	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health and metrics endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return instrumentedMongo.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API routes
	businessMetrics := middleware.NewBusinessMetrics(m)
	handlers := apihttp.NewHandlers(
		receivingService,
		putawayService,
		scanService,
		damageService,
		clientService,
		dashboardService,
		businessMetrics,
		logger,
	)
	apihttp.RegisterRoutes(router, handlers)

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
	Kafka      *kafka.Config
}

func loadConfig() *Config {
	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", mongoConfig.Database)

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = []string{getEnv("KAFKA_BROKERS", "localhost:9092")}

	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8010"),
		MongoDB:    mongoConfig,
		Kafka:      kafkaConfig,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
