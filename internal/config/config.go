// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when present), loads them into structured Go types and validates that
// required values are present so they can be reused across the
// application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (upload, events, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it is loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the HAPPY_ prefix. Keys are lowercased and the
	prefix removed; nesting uses "." or a double underscore:

	  HAPPY_SERVER.PORT   -> server.port -> Config.Server.Port
	  HAPPY_SERVER__PORT  -> server.port -> Config.Server.Port
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "HAPPY_"

// Config is the root configuration object for the application.
//
// Optional blocks are pointers. When they are missing from the
// environment, defaults are injected by LoadConfig.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Upload        *UploadConfig        `koanf:"upload"`
	Events        *EventsConfig        `koanf:"events"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// PublicURL is the externally reachable base URL of the API
	// (e.g. "http://localhost:3333"). Image URLs are built from it.
	PublicURL string `koanf:"public_url" validate:"required,url"`

	// CreateRateLimit is the number of orphanage submissions per second a
	// single client IP may perform. Zero disables the limiter.
	CreateRateLimit float64 `koanf:"create_rate_limit" validate:"gte=0"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port". Redis backs the job queue and the list cache.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required"`

	// ListCacheTTL bounds how long GET /orphanages responses are cached.
	// Zero falls back to DefaultListCacheTTL.
	ListCacheTTL time.Duration `koanf:"list_cache_ttl"`
}

// IntegrationConfig stores credentials for third-party services.
// Every field is optional; an empty value disables the integration.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	NotifyEmail  string `koanf:"notify_email" validate:"omitempty,email"`
	FromEmail    string `koanf:"from_email" validate:"omitempty,email"`
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, validates it, applies defaults and returns the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.finalize(); err != nil {
		return nil, err
	}

	return mainConfig, nil
}

// finalize injects defaults for the optional blocks and validates the
// whole tree. It is split from LoadConfig so tests can build a Config by
// hand and run the same checks.
func (c *Config) finalize() error {
	if c.Upload == nil {
		c.Upload = DefaultUploadConfig()
	}
	c.Upload.applyDefaults()

	if c.Events == nil {
		c.Events = &EventsConfig{}
	}
	c.Events.applyDefaults()

	if c.Redis.ListCacheTTL == 0 {
		c.Redis.ListCacheTTL = DefaultListCacheTTL
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.applyDefaults()
	// Service name and environment always follow the primary config so
	// logs and traces are tagged consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if err := c.Upload.Validate(); err != nil {
		return fmt.Errorf("invalid upload config: %w", err)
	}

	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("invalid observability config: %w", err)
	}

	return nil
}
