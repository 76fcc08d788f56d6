package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// zerologLogger adapts zerolog.Logger to gorm's logger interface. SQL is
// traced at debug level, slow or failed statements at warn/error.
type zerologLogger struct {
	logger        zerolog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewLogger builds a gorm logger scoped to the gorm component.
func NewLogger(logger zerolog.Logger, slowThreshold time.Duration) gormlogger.Interface {
	return &zerologLogger{
		logger:        logger.With().Str("component", "gorm").Logger(),
		level:         gormlogger.Warn,
		slowThreshold: slowThreshold,
	}
}

// LogMode - implements gormlogger.Interface.
func (l *zerologLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level

	return &clone
}

// Info - implements gormlogger.Interface.
func (l *zerologLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Info().Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn - implements gormlogger.Interface.
func (l *zerologLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn().Msg(fmt.Sprintf(msg, data...))
	}
}

// Error - implements gormlogger.Interface.
func (l *zerologLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Error().Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace - implements gormlogger.Interface.
func (l *zerologLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	var event *zerolog.Event
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		event = l.logger.Error().Err(err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		event = l.logger.Warn().Dur("threshold", l.slowThreshold)
	case l.level >= gormlogger.Info:
		event = l.logger.Debug()
	default:
		return
	}

	sql, rows := fc()
	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("elapsed", elapsed).
		Msg("query")
}

var _ gormlogger.Interface = (*zerologLogger)(nil)
