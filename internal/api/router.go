// Package api provides the HTTP API for AirSight.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/airsight/airsight/internal/airquality"
	"github.com/airsight/airsight/internal/api/handler"
	"github.com/airsight/airsight/internal/api/middleware"
	"github.com/airsight/airsight/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Service     *airquality.Service
	Registry    *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "airsight-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.CORS)                 // Public read-only API, every origin allowed
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	indexHandler := handler.NewIndexHandler(cfg.Version)
	airQualityHandler := handler.NewAirQualityHandler(cfg.Service)
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Service, cfg.Registry)

	r.Get("/", indexHandler.Index)

	// Query endpoints (public)
	r.Route("/api", func(r chi.Router) {
		r.Get("/countries", airQualityHandler.ListCountries)
		r.Get("/cities", airQualityHandler.ListCities)
		r.Route("/city/{city}", func(r chi.Router) {
			r.Get("/summary", airQualityHandler.CitySummary)
			r.Get("/history", airQualityHandler.CityHistory)
			r.Get("/stations", airQualityHandler.CityStations)
		})
		r.Get("/heatmap", airQualityHandler.Heatmap)
		r.Get("/insights", airQualityHandler.Insights)
	})

	// Ops endpoints (public)
	r.Route("/ops", func(r chi.Router) {
		r.Get("/health", opsHandler.HealthCheck)
		r.Get("/ready", opsHandler.ReadinessCheck)
		r.Get("/status", opsHandler.SystemStatus)
	})

	return r
}
