package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type Config struct {
	Level  string `env:"LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	Format string `env:"FORMAT" envDefault:"console" validate:"oneof=json console"`
}

// New builds a logger writing to w. Console output is meant for humans,
// json for log shippers.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "gofilter").
		Logger(), nil
}
