package logger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const (
	defaultSlowQuery   = 200 * time.Millisecond
	defaultMaxSQLBytes = 2048
)

// GormLogger adapts zap to gorm's logger.Interface. Statements carry the
// request ID and trace IDs of the context they ran under.
type GormLogger struct {
	base        *zap.Logger
	level       gormlogger.LogLevel
	slowQuery   time.Duration
	maxSQLBytes int
	logNotFound bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is reported
// as slow. Zero disables slow statement reporting.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slowQuery = threshold }
}

// WithMaxSQLLength truncates logged statements to n bytes. Zero keeps them whole.
func WithMaxSQLLength(n int) GormLoggerOption {
	return func(l *GormLogger) { l.maxSQLBytes = n }
}

// WithRecordNotFoundLogging reports gorm.ErrRecordNotFound as an error.
// Lookups that miss are normal for this service, so it is off by default.
func WithRecordNotFoundLogging(enabled bool) GormLoggerOption {
	return func(l *GormLogger) { l.logNotFound = enabled }
}

func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	l := &GormLogger{
		base:        zapLogger.Named("gorm"),
		level:       level,
		slowQuery:   defaultSlowQuery,
		maxSQLBytes: defaultMaxSQLBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *GormLogger) enabled(level gormlogger.LogLevel) bool {
	return l.level != gormlogger.Silent && l.level >= level
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.enabled(gormlogger.Info) {
		l.with(ctx).Info(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.enabled(gormlogger.Warn) {
		l.with(ctx).Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.enabled(gormlogger.Error) {
		l.with(ctx).Error(fmt.Sprintf(msg, data...))
	}
}

// Trace reports a finished statement. Failures log at error, statements
// slower than the threshold at warn, and everything else at debug when the
// level is Info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level == gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	failed := err != nil && l.enabled(gormlogger.Error) &&
		(l.logNotFound || !errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slowQuery > 0 && elapsed > l.slowQuery && l.enabled(gormlogger.Warn)
	if !failed && !slow && !l.enabled(gormlogger.Info) {
		return
	}

	stmt, rows := fc()
	log := l.with(ctx).With(
		zap.String("op", statementKind(stmt)),
		zap.String("sql", l.clip(stmt)),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
	switch {
	case failed:
		log.Error("SQL failed", zap.Error(err))
	case slow:
		log.Warn("Slow SQL", zap.Duration("threshold", l.slowQuery))
	case err == nil:
		log.Debug("SQL executed")
	}
}

func (l *GormLogger) with(ctx context.Context) *zap.Logger {
	log := l.base
	if ctx == nil {
		return log
	}
	if id := GetRequestID(ctx); id != "" {
		log = log.With(zap.String("request_id", id))
	}
	if fields := TraceFields(ctx); len(fields) > 0 {
		log = log.With(fields...)
	}
	return log
}

func (l *GormLogger) clip(stmt string) string {
	if l.maxSQLBytes <= 0 || len(stmt) <= l.maxSQLBytes {
		return stmt
	}
	return stmt[:l.maxSQLBytes] + "...(truncated)"
}

// statementKind returns the leading keyword of stmt in upper case
func statementKind(stmt string) string {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// MapGormLogLevel converts an application log level name. Unknown names map to Warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error", "fatal":
		return gormlogger.Error
	case "debug", "info":
		return gormlogger.Info
	}
	return gormlogger.Warn
}
