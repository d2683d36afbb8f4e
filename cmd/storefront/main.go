package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cartHTTP "github.com/tair/storefront/internal/cart/delivery/http"
	cartRepo "github.com/tair/storefront/internal/cart/repository"
	cartCommand "github.com/tair/storefront/internal/cart/usecase/command"
	catalogHTTP "github.com/tair/storefront/internal/catalog/delivery/http"
	catalogRepo "github.com/tair/storefront/internal/catalog/repository"
	catalogQuery "github.com/tair/storefront/internal/catalog/usecase/query"
	reviewHTTP "github.com/tair/storefront/internal/review/delivery/http"
	reviewRepo "github.com/tair/storefront/internal/review/repository"
	reviewCommand "github.com/tair/storefront/internal/review/usecase/command"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "storefront-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, getEnv("LOG_LEVEL", "info"), isDevelopment)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting storefront service")

	// Tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Redis cache for upstream catalog responses (optional)
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, catalog cache disabled")
			rdb = nil
		} else {
			logger.Logger.Info().Str("addr", addr).Msg("Catalog cache enabled")
		}
		cancel()
	}

	// Kafka publisher for notification events (optional)
	var publisher *kafka.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unreachable, notification events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}
	var cartEvents cartCommand.EventPublisher
	var reviewEvents reviewCommand.EventPublisher
	if publisher != nil {
		cartEvents = publisher
		reviewEvents = publisher
	}

	// Upstream catalog, read through the cache
	catalogAPI := getEnv("CATALOG_API_URL", "https://fakestoreapi.com")
	cacheTTL, _ := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "5m"))
	source := catalogRepo.NewCachedSource(catalogRepo.NewFakeStoreClient(catalogAPI), rdb, cacheTTL)

	logger.Logger.Info().
		Str("catalog_api", catalogAPI).
		Bool("cache", rdb != nil).
		Bool("events", publisher != nil).
		Msg("Storefront dependencies initialized")

	// Handlers
	catalogHandler := catalogHTTP.NewCatalogHandler(source)
	productLookup := catalogQuery.NewGetProductHandler(source)
	cartHandler := cartHTTP.NewCartHandler(cartRepo.NewInMemoryCartStore(), productLookup, cartEvents)
	reviewHandler := reviewHTTP.NewReviewHandler(reviewRepo.NewInMemoryReviewLog(reviewRepo.SeedReviews()), reviewEvents)

	// Router
	router := mux.NewRouter()
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	reviewHandler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Storefront service is healthy",
		})
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	httpPort := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: otelhttp.NewHandler(c.Handler(router), "storefront"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
