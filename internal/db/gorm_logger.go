package db

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/salonhub/salon-api/internal/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger routes gorm output through zerolog.
type GormLogger struct {
	log   zerolog.Logger
	level gormlogger.LogLevel
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewGormLogger(l zerolog.Logger) *GormLogger {
	return &GormLogger{log: l, level: gormlogger.Warn}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Info {
		g.withCtx(ctx).Info().Msgf(msg, args...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.withCtx(ctx).Warn().Msgf(msg, args...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.level >= gormlogger.Error {
		g.withCtx(ctx).Error().Msgf(msg, args...)
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	l := g.withCtx(ctx)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormlogger.Error:
		sql, rows := fc()
		l.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > slowQueryThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		l.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		l.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}

func (g *GormLogger) withCtx(ctx context.Context) *zerolog.Logger {
	l := g.log
	if id := logging.RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	return &l
}
