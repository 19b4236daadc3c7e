// Package config loads server configuration from the environment
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-character-api/internal/errors"
)

// Config is the process configuration. Cobra flags may override fields
// after Load.
type Config struct {
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// CatalogPath is the YAML rule catalog the server loads at startup
	CatalogPath   string        `env:"CATALOG_PATH"`
	StatsCacheTTL time.Duration `env:"STATS_CACHE_TTL" envDefault:"10m"`
	MaxGoldAmount int           `env:"MAX_GOLD_AMOUNT" envDefault:"10000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// OTelEndpoint is an OTLP/HTTP traces URL; empty disables tracing
	OTelEndpoint string `env:"OTEL_ENDPOINT"`

	DND5eAPIBaseURL string        `env:"DND5E_API_BASE_URL" envDefault:"https://www.dnd5eapi.co/api/"`
	DND5eAPITimeout time.Duration `env:"DND5E_API_TIMEOUT" envDefault:"30s"`
}

// Load parses the environment into a Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}
	return cfg, nil
}

// Validate checks the settings the server needs
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRange("GRPC_PORT", c.GRPCPort, 1, 65535, vb)
	errors.ValidateRequired("REDIS_ADDR", c.RedisAddr, vb)
	errors.ValidateRequired("CATALOG_PATH", c.CatalogPath, vb)
	if c.RedisPoolSize < 0 {
		vb.Field("REDIS_POOL_SIZE", "cannot be negative")
	}
	if c.StatsCacheTTL <= 0 {
		vb.Field("STATS_CACHE_TTL", "must be positive")
	}
	if c.MaxGoldAmount < 1 {
		vb.Field("MAX_GOLD_AMOUNT", "must be at least 1")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		vb.Fieldf("LOG_LEVEL", "unknown level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		vb.Fieldf("LOG_FORMAT", "unknown format %q", c.LogFormat)
	}

	return vb.Build()
}

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT
func (c *Config) Logger() *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func parseLevel(s string) (slog.Level, bool) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, false
	}
	return level, true
}
