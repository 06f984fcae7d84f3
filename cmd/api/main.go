// Package main provides the entrypoint for the LagosHaul API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/api"
	"github.com/lagoshaul/lagoshaul/internal/api/handler"
	"github.com/lagoshaul/lagoshaul/internal/api/middleware"
	"github.com/lagoshaul/lagoshaul/internal/database"
	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/fuel/nnpc"
	"github.com/lagoshaul/lagoshaul/internal/geo"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
	"github.com/lagoshaul/lagoshaul/internal/provider/resilience"
	"github.com/lagoshaul/lagoshaul/internal/quote"
	"github.com/lagoshaul/lagoshaul/internal/routing"
	"github.com/lagoshaul/lagoshaul/internal/routing/googlemaps"
	"github.com/lagoshaul/lagoshaul/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "lagoshaul-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting LagosHaul API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Storage: PostgreSQL when configured, in-memory otherwise
	var (
		quoteRepo   quote.Repository
		pricingRepo pricing.Repository
		dbPing      handler.PingFunc
	)
	if database.ConfigIsSet() {
		dbConfig := database.ConfigFromEnv()
		pool, connErr := database.Connect(ctx, dbConfig)
		if connErr != nil {
			log.Fatal().Err(connErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		quoteRepo = quote.NewPostgresRepository(pool)
		pricingRepo = pricing.NewPostgresRepository(pool)
		dbPing = pool.Ping
	} else {
		log.Warn().Msg("no database configured, using in-memory storage")
		quoteRepo = quote.NewInMemoryRepository()
		pricingRepo = pricing.NewInMemoryRepository()
	}

	// Provider health registry
	registry := resilience.NewRegistry()

	// Initialize pricing service
	pricingService := pricing.NewService(ctx, pricing.ServiceConfig{
		Repository: pricingRepo,
		Logger:     log,
	})
	log.Info().Msg("pricing service initialized")

	// Initialize fuel price service
	fuelClient := nnpc.NewClient(nnpc.ClientConfig{
		BaseURL:  os.Getenv("NNPC_BASE_URL"),
		APIKey:   os.Getenv("NNPC_API_KEY"),
		Logger:   log,
		Registry: registry,
	})
	fuelService := fuel.NewService(fuel.ServiceConfig{
		Provider: fuelClient,
		Logger:   log,
	})
	log.Info().Msg("fuel service initialized")

	// Initialize route provider (may be nil if not configured)
	var routeService *routing.Service
	mapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if mapsAPIKey != "" {
		providerMetrics, pmErr := middleware.NewProviderMetrics()
		if pmErr != nil {
			log.Fatal().Err(pmErr).Msg("failed to initialize provider metrics")
		}
		mapsClient, mapsErr := googlemaps.NewClient(googlemaps.ClientConfig{
			APIKey: mapsAPIKey,
			Logger: log,
		})
		if mapsErr != nil {
			log.Fatal().Err(mapsErr).Msg("failed to create maps client")
		}
		routeService = routing.NewService(routing.ServiceConfig{
			Provider: mapsClient,
			Logger:   log,
			Metrics:  providerMetrics,
		})
		log.Info().Msg("route provider initialized")
	} else {
		log.Warn().Msg("no maps API key configured, using static distance table only")
	}

	// Initialize quote service and estimator
	quoteService := quote.NewService(quote.ServiceConfig{
		Repository: quoteRepo,
		Logger:     log,
	})
	estimator := quote.NewEstimator(quote.EstimatorConfig{
		Resolver: geo.NewResolver(),
		Routes:   routeService,
		Fuel:     fuelService,
		Params:   pricingService,
		Logger:   log,
	})
	log.Info().Msg("quote service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:          Version,
		BuildTime:        BuildTime,
		Logger:           log,
		ServiceName:      serviceName,
		Metrics:          metrics,
		QuoteService:     quoteService,
		Estimator:        estimator,
		PricingService:   pricingService,
		FuelService:      fuelService,
		ProviderRegistry: registry,
		DBPing:           dbPing,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
