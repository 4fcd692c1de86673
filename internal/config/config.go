package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"geminus.dev/internal/catalog"
)

// Telemetry holds the OpenTelemetry exporter settings shared by both processes
type Telemetry struct {
	Enabled  bool   `env:"GEMINUS_OTEL_ENABLED" envDefault:"false"`
	Endpoint string `env:"GEMINUS_OTEL_ENDPOINT"`
}

// ServerConfig holds the reference game server configuration
type ServerConfig struct {
	Addr        string        `env:"GEMINUS_SERVER_ADDR" envDefault:":8080"`
	CatalogPath string        `env:"GEMINUS_CATALOG_PATH"`
	JWTSecret   string        `env:"GEMINUS_JWT_SECRET"`
	TokenTTL    time.Duration `env:"GEMINUS_TOKEN_TTL" envDefault:"24h"`
	RateLimit   float64       `env:"GEMINUS_RATE_LIMIT" envDefault:"20"`
	RateBurst   int           `env:"GEMINUS_RATE_BURST" envDefault:"40"`
	Telemetry   Telemetry
}

// ClientConfig holds the client core configuration
type ClientConfig struct {
	Addr          string        `env:"GEMINUS_CLIENT_ADDR" envDefault:"127.0.0.1:8081"`
	APIBase       string        `env:"GEMINUS_API_BASE" envDefault:"http://localhost:8080"`
	HTTPTimeout   time.Duration `env:"GEMINUS_HTTP_TIMEOUT" envDefault:"5s"`
	CatalogPath   string        `env:"GEMINUS_CATALOG_PATH"`
	StorageDriver string        `env:"GEMINUS_STORAGE_DRIVER" envDefault:"sqlite"`
	StoragePath   string        `env:"GEMINUS_STORAGE_PATH" envDefault:"geminus.db"`
	Autosave      time.Duration `env:"GEMINUS_AUTOSAVE" envDefault:"30s"`
	Telemetry     Telemetry
}

// Storage drivers accepted by GEMINUS_STORAGE_DRIVER
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bbolt"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadServer reads the server configuration
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.TokenTTL <= 0 {
		return cfg, fmt.Errorf("GEMINUS_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		return cfg, fmt.Errorf("rate limit must be positive, got %g/s burst %d", cfg.RateLimit, cfg.RateBurst)
	}
	return cfg, nil
}

// LoadClient reads the client configuration
func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.StorageDriver {
	case DriverSQLite, DriverBolt:
	default:
		return cfg, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if cfg.HTTPTimeout <= 0 {
		return cfg, fmt.Errorf("GEMINUS_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}
	return cfg, nil
}

// LoadCatalog reads the zone catalog at path, or builds the built-in one when path is empty
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Builtin()
	}
	return catalog.Load(path)
}

// Exitf prints a formatted message to stderr and exits with status 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
