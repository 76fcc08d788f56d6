package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"

	"github.com/Alp4ka/gofilter/internal/logger"
)

const envPrefix = "GOFILTER_"

type Config struct {
	DB       DBConfig      `envPrefix:"DB_"`
	Log      logger.Config `envPrefix:"LOG_"`
	MaxLimit int           `env:"MAX_LIMIT" envDefault:"100" validate:"gt=0"`
	// Seed loads a small demo dataset after migrating.
	Seed bool `env:"SEED" envDefault:"true"`
}

type DBConfig struct {
	Dialect string `env:"DIALECT" envDefault:"sqlite" validate:"oneof=sqlite mysql postgres"`
	DSN     string `env:"DSN" envDefault:"file::memory:?cache=shared" validate:"required"`
	// SlowQueryMs logs statements slower than this at warn level. 0 disables.
	SlowQueryMs int `env:"SLOW_QUERY_MS" envDefault:"200" validate:"gte=0"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads the configuration from environment, or from the process
// environment when environment is nil.
func LoadFrom(environment map[string]string) (*Config, error) {
	var cfg Config

	opts := env.Options{Prefix: envPrefix, Environment: environment}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}
