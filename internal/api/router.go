// Package api provides the HTTP API for LagosHaul.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lagoshaul/lagoshaul/internal/api/handler"
	"github.com/lagoshaul/lagoshaul/internal/api/middleware"
	"github.com/lagoshaul/lagoshaul/internal/fuel"
	"github.com/lagoshaul/lagoshaul/internal/pricing"
	"github.com/lagoshaul/lagoshaul/internal/provider/resilience"
	"github.com/lagoshaul/lagoshaul/internal/quote"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version          string
	BuildTime        string
	Logger           zerolog.Logger
	ServiceName      string
	Metrics          *middleware.Metrics
	QuoteService     *quote.Service
	Estimator        *quote.Estimator
	PricingService   *pricing.Service
	FuelService      *fuel.Service
	ProviderRegistry *resilience.Registry
	DBPing           handler.PingFunc
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "lagoshaul-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequireTLS)
	r.Use(middleware.RequireJSON)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DBPing, cfg.ProviderRegistry)
	quoteHandler := handler.NewQuoteHandler(cfg.QuoteService, cfg.Estimator)
	pricingHandler := handler.NewPricingHandler(cfg.PricingService)
	fuelHandler := handler.NewFuelHandler(cfg.FuelService)
	metadataHandler := handler.NewMetadataHandler()

	estimateRateLimit := middleware.RateLimitByIP(middleware.EstimateRateLimit)
	exportRateLimit := middleware.RateLimitByIP(middleware.ExportRateLimit)
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/lgas", metadataHandler.ListLGAs)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		// Estimate - may call the route provider, strict rate limiting
		r.With(estimateRateLimit).Post("/quotes:estimate", quoteHandler.Estimate)

		// Negotiation check - pure computation
		r.With(standardRateLimit).Post("/quotes:negotiate", quoteHandler.Negotiate)

		// CSV export - walks all pages, strictest rate limiting
		r.With(exportRateLimit).Get("/quotes:export", quoteHandler.Export)

		// Saved quotes
		r.Route("/quotes", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", quoteHandler.List)
			r.Post("/", quoteHandler.Create)
			r.Route("/{quoteId}", func(r chi.Router) {
				r.Get("/", quoteHandler.Get)
				r.Put("/", quoteHandler.Update)
				r.Delete("/", quoteHandler.Delete)
			})
		})

		// Pricing parameter administration
		r.Route("/pricing", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/params", pricingHandler.GetParams)
			r.Put("/params", pricingHandler.UpdateParams)
		})

		// Fuel price
		r.With(standardRateLimit).Get("/fuel/price", fuelHandler.GetPrice)
	})

	return r
}
