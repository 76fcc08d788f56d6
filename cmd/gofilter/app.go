package main

import (
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Alp4ka/gofilter"
	"github.com/Alp4ka/gofilter/gormstore"
	"github.com/Alp4ka/gofilter/internal/config"
	"github.com/Alp4ka/gofilter/internal/logger"
	"github.com/Alp4ka/gofilter/promstore"
)

// app holds everything a subcommand needs.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	db       *gorm.DB
	registry *prometheus.Registry
	service  *gofilter.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		return nil, err
	}

	slow := time.Duration(cfg.DB.SlowQueryMs) * time.Millisecond
	db, err := gormstore.Open(cfg.DB.Dialect, cfg.DB.DSN, gormstore.NewLogger(log, slow))
	if err != nil {
		return nil, err
	}

	if err = gormstore.AutoMigrate(db); err != nil {
		return nil, err
	}

	if cfg.Seed {
		if err = seed(db); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		log.Debug().Msg("demo data seeded")
	}

	store, err := gormstore.New(db)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	service := gofilter.NewService(
		promstore.New(store, registry),
		gofilter.WithLogger(log),
		gofilter.WithMaxLimit(cfg.MaxLimit),
	)

	return &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		registry: registry,
		service:  service,
	}, nil
}

func (a *app) close() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close database")
	}
}

// logMetrics writes the store counters gathered during the command.
func (a *app) logMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to gather metrics")
		return
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			event := a.logger.Info().Str("metric", mf.GetName())
			for _, label := range m.GetLabel() {
				event = event.Str(label.GetName(), label.GetValue())
			}
			switch {
			case m.GetCounter() != nil:
				event = event.Float64("value", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				event = event.
					Uint64("count", m.GetHistogram().GetSampleCount()).
					Float64("sum", m.GetHistogram().GetSampleSum())
			}
			event.Msg("store metric")
		}
	}
}
