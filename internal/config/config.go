// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so they can be reused across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (e.g. observability).
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix BOOKSHELF_.
	Keys are lowercased with the prefix removed, and "." marks nesting:

		BOOKSHELF_SERVER.PORT               -> server.port    -> Config.Server.Port
		BOOKSHELF_SERVER.CORS_ALLOWED_ORIGINS -> comma separated list
*/

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "BOOKSHELF_"

// Store drivers understood by the repository layer.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"
)

// Config is the root configuration object for the application.
//
// Database and Redis are pointers because which of them is needed depends on
// the store driver and on whether background jobs run.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Store         StoreConfig          `koanf:"store" validate:"required"`
	Database      *DatabaseConfig      `koanf:"database" validate:"omitempty"`
	Redis         *RedisConfig         `koanf:"redis" validate:"omitempty"`
	Job           JobConfig            `koanf:"job"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
// Env is the environment label used to tag logs and switch behavior
// ("local", "development", "production").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the number of requests per second allowed per client IP.
	// Zero means DefaultRateLimit.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`

	// DisableCSRF turns off the double-submit cookie check on unsafe methods.
	DisableCSRF bool `koanf:"disable_csrf"`
}

// DefaultRateLimit is used when server.rate_limit is not set.
const DefaultRateLimit = 20

// StoreConfig selects the book store implementation.
type StoreConfig struct {
	Driver string `koanf:"driver" validate:"required,oneof=postgres redis memory"`

	// RedisPrefix namespaces the keys of the redis driver.
	RedisPrefix string `koanf:"redis_prefix"`
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
// Address is typically "host:port".
type RedisConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"gte=0"`
}

// JobConfig toggles the asynq worker that processes book lifecycle events.
// It needs the redis block.
type JobConfig struct {
	Enabled     bool `koanf:"enabled"`
	Concurrency int  `koanf:"concurrency" validate:"gte=0"`
}

// LoadConfig loads configuration from environment variables, unmarshals it into
// Config structs, validates it, applies defaults, and returns the resulting config.
func LoadConfig() (*Config, error) {
	return load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}))
}

// load does the actual work of LoadConfig against any koanf provider so tests
// can feed it a map instead of the process environment.
func load(provider koanf.Provider) (*Config, error) {
	// "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}

	// "" unmarshals everything from the root.
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if err := mainConfig.Validate(); err != nil {
		return nil, err
	}

	// Set default observability config if not provided.
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config so
	// logs and traces see consistent naming.
	mainConfig.Observability.ServiceName = "bookshelf"
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// Validate runs the struct-tag validation and the rules that span blocks.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if c.Store.Driver == StoreDriverPostgres && c.Database == nil {
		return fmt.Errorf("database config is required for the %s store driver", StoreDriverPostgres)
	}

	if c.Store.Driver == StoreDriverRedis && c.Redis == nil {
		return fmt.Errorf("redis config is required for the %s store driver", StoreDriverRedis)
	}

	if c.Job.Enabled && c.Redis == nil {
		return fmt.Errorf("redis config is required when background jobs are enabled")
	}

	return nil
}

// GetRateLimit returns the configured per-IP rate or DefaultRateLimit.
func (s ServerConfig) GetRateLimit() float64 {
	if s.RateLimit <= 0 {
		return DefaultRateLimit
	}
	return s.RateLimit
}

// IsProduction reports whether the primary environment label is "production".
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
