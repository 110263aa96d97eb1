// Package config loads the gateway's runtime configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the gateway's runtime configuration.
type Config struct {
	// Port is the HTTP listen port.
	Port int

	// Environment is the deployment environment name (development,
	// staging, production).
	Environment string

	// OpenAQAPIKey authenticates against the live upstream. Empty means
	// every request resolves to the fallback dataset.
	OpenAQAPIKey string

	// OpenAQBaseURL overrides the upstream base URL, mainly for tests.
	OpenAQBaseURL string

	// UseSampleData pins every request to the fallback dataset even when
	// an API key is configured.
	UseSampleData bool

	// UpstreamTimeout bounds each upstream call.
	UpstreamTimeout time.Duration

	// TelemetryEnabled turns on OTLP trace and metric export.
	TelemetryEnabled bool

	// OTLPEndpoint is the OTLP gRPC collector endpoint.
	OTLPEndpoint string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	timeout, err := time.ParseDuration(getEnvOrDefault("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		timeout = 10 * time.Second
	}

	return Config{
		Port:             port,
		Environment:      getEnvOrDefault("APP_ENV", "development"),
		OpenAQAPIKey:     os.Getenv("OPENAQ_API_KEY"),
		OpenAQBaseURL:    os.Getenv("OPENAQ_BASE_URL"),
		UseSampleData:    strings.ToLower(os.Getenv("USE_SAMPLE_DATA")) == "true",
		UpstreamTimeout:  timeout,
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
	}
}

// UpstreamEnabled reports whether live upstream resolution is possible at
// all under this configuration.
func (c Config) UpstreamEnabled() bool {
	return c.OpenAQAPIKey != "" && !c.UseSampleData
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
