// Package main provides the entrypoint for the LagosHaul background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/api/middleware"
	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/fuel/nnpc"
	"github.com/lagoshaul/lagoshaul/internal/provider/resilience"
	"github.com/lagoshaul/lagoshaul/internal/routing"
	"github.com/lagoshaul/lagoshaul/internal/routing/googlemaps"
	"github.com/lagoshaul/lagoshaul/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "lagoshaul-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting LagosHaul worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := resilience.NewRegistry()

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

	var routeService *routing.Service
	if apiKey := os.Getenv("GOOGLE_MAPS_API_KEY"); apiKey != "" {
		providerMetrics, err := middleware.NewProviderMetrics()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize provider metrics")
		}
		mapsClient, err := googlemaps.NewClient(googlemaps.ClientConfig{
			APIKey: apiKey,
			Logger: log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create maps client")
		}
		routeService = routing.NewService(routing.ServiceConfig{
			Provider: mapsClient,
			Logger:   log,
			Metrics:  providerMetrics,
		})
	} else {
		log.Warn().Msg("no maps API key configured, route warmup disabled")
	}

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:       worker.DefaultRefreshConfig(),
		Logger:       log,
		FuelService:  fuelService,
		RouteService: routeService,
	})

	// Create HTTP server for health checks
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Pub/Sub driven when configured, ticker driven otherwise
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	if projectID != "" {
		subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
		if subscription == "" {
			subscription = "lagoshaul-refresh"
		}

		pubsubHandler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		interval := 30 * time.Minute
		if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				interval = parsed
			}
		}

		go func() {
			log.Info().Dur("interval", interval).Msg("worker started on refresh ticker")
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := refreshJob.RefreshFuel(ctx); err != nil {
						log.Warn().Err(err).Msg("fuel refresh failed")
					}
					_ = refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
