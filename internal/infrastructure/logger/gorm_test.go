package logger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestNewGormLogger_Defaults(t *testing.T) {
	l, _ := observedLogger()
	gl := NewGormLogger(l, gormlogger.Warn)

	assert.Equal(t, gormlogger.Warn, gl.level)
	assert.Equal(t, defaultSlowQuery, gl.slowQuery)
	assert.Equal(t, defaultMaxSQLBytes, gl.maxSQLBytes)
	assert.False(t, gl.logNotFound)

	gl = NewGormLogger(l, gormlogger.Warn,
		WithSlowThreshold(50*time.Millisecond),
		WithMaxSQLLength(10),
		WithRecordNotFoundLogging(true),
	)
	assert.Equal(t, 50*time.Millisecond, gl.slowQuery)
	assert.Equal(t, 10, gl.maxSQLBytes)
	assert.True(t, gl.logNotFound)
}

func TestGormLogger_LogModeLeavesOriginal(t *testing.T) {
	l, _ := observedLogger()
	gl := NewGormLogger(l, gormlogger.Warn)

	info := gl.LogMode(gormlogger.Info).(*GormLogger)
	assert.Equal(t, gormlogger.Info, info.level)
	assert.Equal(t, gormlogger.Warn, gl.level)
}

func TestGormLogger_TraceFailure(t *testing.T) {
	l, logs := observedLogger()
	gl := NewGormLogger(l, gormlogger.Warn)
	ctx, _ := WithRequestID(spanContext(t), l, "req-1")

	gl.Trace(ctx, time.Now(), sqlFn("update products SET stock = stock - 1", 0), errors.New("locked"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "SQL failed", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "UPDATE", fields["op"])
	assert.Equal(t, "locked", fields["error"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
}

func TestGormLogger_TraceRecordNotFound(t *testing.T) {
	l, logs := observedLogger()

	NewGormLogger(l, gormlogger.Warn).
		Trace(context.Background(), time.Now(), sqlFn("SELECT * FROM dues", 0), gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	NewGormLogger(l, gormlogger.Warn, WithRecordNotFoundLogging(true)).
		Trace(context.Background(), time.Now(), sqlFn("SELECT * FROM dues", 0), gormlogger.ErrRecordNotFound)
	assert.Equal(t, 1, logs.Len())
}

func TestGormLogger_TraceSlowQuery(t *testing.T) {
	l, logs := observedLogger()
	gl := NewGormLogger(l, gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	gl.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT * FROM sales", 12), nil)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Slow SQL", logs.All()[0].Message)
	assert.Equal(t, int64(12), logs.All()[0].ContextMap()["rows"])
}

func TestGormLogger_TraceSkipsFastQueriesAtWarn(t *testing.T) {
	l, logs := observedLogger()
	called := false
	NewGormLogger(l, gormlogger.Warn).Trace(context.Background(), time.Now(), func() (string, int64) {
		called = true
		return "SELECT 1", 1
	}, nil)

	assert.Equal(t, 0, logs.Len())
	assert.False(t, called, "statement should not be rendered when nothing is logged")
}

func TestGormLogger_TraceSilent(t *testing.T) {
	l, logs := observedLogger()
	gl := NewGormLogger(l, gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), errors.New("boom"))
	gl.Error(context.Background(), "boom %d", 1)
	assert.Equal(t, 0, logs.Len())
}

func TestGormLogger_TraceInfoTruncates(t *testing.T) {
	l, logs := observedLogger()
	gl := NewGormLogger(l, gormlogger.Info, WithMaxSQLLength(8))

	gl.Trace(context.Background(), time.Now(), sqlFn("SELECT * FROM products", 3), nil)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "SQL executed", entry.Message)
	assert.Equal(t, "SELECT *...(truncated)", entry.ContextMap()["sql"])
	assert.Equal(t, "SELECT", entry.ContextMap()["op"])
}

func TestGormLogger_Messages(t *testing.T) {
	l, logs := observedLogger()
	gl := NewGormLogger(l, gormlogger.Warn)

	gl.Info(context.Background(), "ignored %s", "info")
	gl.Warn(context.Background(), "pool %d exhausted", 3)
	gl.Error(context.Background(), "dial %s", "refused")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "pool 3 exhausted", logs.All()[0].Message)
	assert.Equal(t, "dial refused", logs.All()[1].Message)
}

func TestStatementKind(t *testing.T) {
	assert.Equal(t, "INSERT", statementKind("  insert INTO sales VALUES (1)"))
	assert.Equal(t, "", statementKind(strings.Repeat(" ", 3)))
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("ERROR"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
