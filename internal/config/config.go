// Package config loads runtime configuration from environment variables
// prefixed with GASVIZ_ and validates it before the process wires anything up.
package config

import (
	"time"

	"github.com/gabapcia/gasviz/internal/pkg/validation"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable the process reads at startup.
type Config struct {
	// RPCEndpoint is the Ethereum JSON-RPC HTTP endpoint to poll.
	RPCEndpoint string `envconfig:"RPC_ENDPOINT" required:"true" validate:"required,url"`

	// RPCAPIKeyHeader and RPCAPIKey attach a provider auth header to every
	// request. Both empty means the endpoint needs no auth.
	RPCAPIKeyHeader string `envconfig:"RPC_API_KEY_HEADER" validate:"required_with=RPCAPIKey"`
	RPCAPIKey       string `envconfig:"RPC_API_KEY" validate:"required_with=RPCAPIKeyHeader"`

	// FetchInterval is the cadence for issuing latest-block requests.
	FetchInterval time.Duration `envconfig:"FETCH_INTERVAL" default:"2s" validate:"gt=0"`

	// DrainInterval is the cadence for collecting completed responses.
	DrainInterval time.Duration `envconfig:"DRAIN_INTERVAL" default:"1s" validate:"gt=0"`

	// FetchRetryAttempts re-attempts a failed fetch before surfacing the
	// error. Zero disables retries.
	FetchRetryAttempts uint `envconfig:"FETCH_RETRY_ATTEMPTS" default:"0"`

	// FetchInFlightGuard suppresses a new fetch while a previous one is
	// still outstanding instead of letting requests overlap.
	FetchInFlightGuard bool `envconfig:"FETCH_IN_FLIGHT_GUARD" default:"false"`

	// KnownBlocksRetentionLimit bounds the dedup set to the n most recently
	// rendered block numbers. Zero keeps everything.
	KnownBlocksRetentionLimit int64 `envconfig:"KNOWN_BLOCKS_RETENTION_LIMIT" default:"0" validate:"gte=0"`

	// RedisAddr enables the Redis-backed known-block store. Empty falls back
	// to the in-memory store.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisUsername string `envconfig:"REDIS_USERNAME"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0" validate:"gte=0"`

	// LogLevel sets the minimum level emitted by the process logger.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// TelemetryEnabled turns on the OTLP exporters for traces, metrics and
	// logs. The collector endpoint comes from the standard OTEL_* variables.
	TelemetryEnabled bool `envconfig:"TELEMETRY_ENABLED" default:"false"`
}

// Load reads the GASVIZ_-prefixed environment and validates the result.
func Load() (Config, error) {
	validation.Init()

	var cfg Config
	if err := envconfig.Process("gasviz", &cfg); err != nil {
		return Config{}, err
	}

	if err := validation.Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
