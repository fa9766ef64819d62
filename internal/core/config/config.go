package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported rate data stores.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Supported carrier performance sources.
const (
	PerformanceFromStore = "store"
	PerformanceFromHTTP  = "http"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// Backend specific keys are checked by validateBackends once the backend is known.
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// RateStore holds where rate contracts, zones and scores are read from.
	RateStore RateStoreConfig `mapstructure:",squash"`

	// Database holds the database configuration.
	Database DatabaseConfig `mapstructure:",squash"`

	// Cache holds the Redis read-through cache configuration.
	Cache CacheConfig `mapstructure:",squash"`

	// Performance holds the carrier scorecard source configuration.
	Performance PerformanceConfig `mapstructure:",squash"`

	// Engine holds the quoting engine limits.
	Engine EngineConfig `mapstructure:",squash"`
}

// RateStoreConfig selects the rate data backend.
type RateStoreConfig struct {
	// Kind is either "memory" or "postgres".
	Kind string `mapstructure:"RATE_STORE" default:"memory"`
	// FixturePath is the JSON file loaded by the memory store.
	FixturePath string `mapstructure:"RATE_FIXTURE_PATH"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string.
	URL string `mapstructure:"DATABASE_URL"`
	// MaxConns caps the pgx pool size.
	MaxConns int `mapstructure:"DB_MAX_CONNS" default:"10"`
}

// CacheConfig holds the Redis cache settings. An empty URL disables caching.
type CacheConfig struct {
	// RedisURL has the form redis://[:password@]host[:port][/database].
	RedisURL string `mapstructure:"REDIS_URL"`
	// TTLSeconds is how long cached rate data stays valid.
	TTLSeconds int `mapstructure:"CACHE_TTL_SECONDS" default:"300"`
}

// PerformanceConfig selects where carrier performance scores come from.
type PerformanceConfig struct {
	// Source is either "store" (same backend as rate data) or "http".
	Source string `mapstructure:"PERFORMANCE_SOURCE" default:"store"`
	// URL is the base URL of the scorecard service when Source is "http".
	URL string `mapstructure:"PERFORMANCE_URL"`
}

// EngineConfig holds the quoting engine limits.
type EngineConfig struct {
	// QuoteTimeoutMS bounds a whole quote or allocation request.
	QuoteTimeoutMS int `mapstructure:"QUOTE_TIMEOUT_MS" default:"5000"`
	// Workers bounds concurrent candidate evaluations per request.
	Workers int `mapstructure:"QUOTE_WORKERS" default:"8"`
	// ContractPageSize is the page size used when listing rate contracts.
	ContractPageSize int `mapstructure:"CONTRACT_PAGE_SIZE" default:"100"`
}

// QuoteTimeout returns the request timeout as a duration.
func (e EngineConfig) QuoteTimeout() time.Duration {
	return time.Duration(e.QuoteTimeoutMS) * time.Millisecond
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateBackends(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateBackends enforces the keys that become mandatory once a backend is selected.
func validateBackends(cfg *AppConfig) error {
	cfg.RateStore.Kind = strings.ToLower(strings.TrimSpace(cfg.RateStore.Kind))
	cfg.Performance.Source = strings.ToLower(strings.TrimSpace(cfg.Performance.Source))

	switch cfg.RateStore.Kind {
	case StoreMemory:
	case StorePostgres:
		if cfg.Database.URL == "" {
			return fmt.Errorf("missing required configuration: DATABASE_URL")
		}
	default:
		return fmt.Errorf("unsupported RATE_STORE: %q", cfg.RateStore.Kind)
	}

	switch cfg.Performance.Source {
	case PerformanceFromStore:
	case PerformanceFromHTTP:
		if cfg.Performance.URL == "" {
			return fmt.Errorf("missing required configuration: PERFORMANCE_URL")
		}
	default:
		return fmt.Errorf("unsupported PERFORMANCE_SOURCE: %q", cfg.Performance.Source)
	}

	if cfg.Engine.QuoteTimeoutMS < 1 {
		cfg.Engine.QuoteTimeoutMS = 5000
	}
	if cfg.Engine.Workers < 1 {
		cfg.Engine.Workers = 1
	}
	if cfg.Engine.ContractPageSize < 1 {
		cfg.Engine.ContractPageSize = 100
	}
	return nil
}
