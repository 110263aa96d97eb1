// Package main provides the entrypoint for the AirSight API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/airsight/airsight/internal/airquality"
	"github.com/airsight/airsight/internal/airquality/openaq"
	"github.com/airsight/airsight/internal/airquality/sample"
	"github.com/airsight/airsight/internal/api"
	"github.com/airsight/airsight/internal/api/middleware"
	"github.com/airsight/airsight/internal/config"
	"github.com/airsight/airsight/internal/provider/resilience"
	"github.com/airsight/airsight/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "airsight-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AirSight API")

	cfg := config.Load()

	log.Info().
		Bool("api_key_configured", cfg.OpenAQAPIKey != "").
		Bool("use_sample_data", cfg.UseSampleData).
		Msg("data source configuration")

	// Initialize OpenTelemetry
	ctx := context.Background()
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
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

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	providerMetrics, err := middleware.NewProviderMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	// Fallback dataset is always available
	fallback := sample.NewProvider()

	// Live upstream, only when an API key is configured
	registry := resilience.NewRegistry()
	var upstream airquality.Upstream
	if cfg.OpenAQAPIKey != "" {
		upstream = openaq.NewClient(openaq.ClientConfig{
			APIKey:   cfg.OpenAQAPIKey,
			BaseURL:  cfg.OpenAQBaseURL,
			Timeout:  cfg.UpstreamTimeout,
			Registry: registry,
			Metrics:  providerMetrics,
			Logger:   log,
		})
		log.Info().Msg("openaq upstream client initialized")
	} else {
		log.Warn().Msg("no OpenAQ API key configured - serving fallback dataset only")
	}

	service := airquality.NewService(airquality.ServiceConfig{
		Upstream:    upstream,
		Fallback:    fallback,
		ForceSample: cfg.UseSampleData,
		Timeout:     cfg.UpstreamTimeout,
		Logger:      log,
	})
	log.Info().Msg("air quality service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Service:     service,
		Registry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
