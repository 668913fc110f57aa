// Package config loads the application configuration from the environment.
// A .env file, when present, is loaded by the entrypoint before parsing.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host               string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port               string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout        time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout       time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout    time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimitPerSecond int           `env:"SERVER_RATE_LIMIT_PER_SECOND" envDefault:"50"`
	RateLimitBurst     int           `env:"SERVER_RATE_LIMIT_BURST" envDefault:"100"`
	AllowedOrigins     []string      `env:"SERVER_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// StoreConfig holds the durable store settings.
type StoreConfig struct {
	Path       string `env:"STORE_PATH" envDefault:"./data/planner"`
	InMemory   bool   `env:"STORE_IN_MEMORY" envDefault:"false"`
	SyncWrites bool   `env:"STORE_SYNC_WRITES" envDefault:"true"`
}

// CatalogConfig selects the attraction data source. An empty path keeps
// the embedded catalog.
type CatalogConfig struct {
	Path string `env:"CATALOG_PATH"`
}

// FeedConfig points at the external weather and events collaborators.
type FeedConfig struct {
	WeatherURL string        `env:"FEED_WEATHER_URL" envDefault:"https://api.openweathermap.org/data/2.5/weather"`
	WeatherKey string        `env:"FEED_WEATHER_API_KEY"`
	EventsURL  string        `env:"FEED_EVENTS_URL" envDefault:"https://data.cityofnewyork.us/resource/tvpp-9vvx.json?$limit=3"`
	City       string        `env:"FEED_CITY" envDefault:"New York"`
	Timeout    time.Duration `env:"FEED_TIMEOUT" envDefault:"10s"`
}

// ObservabilityConfig toggles metrics and selects the log level.
type ObservabilityConfig struct {
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`
}

// Config is the full application configuration.
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Catalog       CatalogConfig
	Feed          FeedConfig
	Observability ObservabilityConfig
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
