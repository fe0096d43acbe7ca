package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(nil, Config{Level: "loud"})
	assert.Error(t, err)

	log, err := New(nil, Config{Level: "warn", Format: "console"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))
}

func TestWithContextAddsRunID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := WithRunID(context.Background(), " run-1 ")
	WithContext(ctx, base).Info("hello")
	WithContext(context.Background(), base).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].ContextMap()["run_id"])
	assert.NotContains(t, entries[1].ContextMap(), "run_id")
	assert.Nil(t, WithContext(ctx, nil))
}

func TestGormLoggerTrace(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	gl := NewGormLogger(DefaultGormLoggerConfig(), zap.New(core))
	sql := func() (string, int64) { return " SELECT * FROM subscriptions ", 3 }

	gl.Trace(context.Background(), time.Now(), sql, nil)
	assert.Equal(t, 0, logs.Len())

	gl.Trace(context.Background(), time.Now(), sql, gormlogger.ErrRecordNotFound)
	assert.Equal(t, 0, logs.Len())

	gl.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "gorm.query", entry.Message)
	assert.Equal(t, "SELECT * FROM subscriptions", entry.ContextMap()["sql"])

	verbose := gl.LogMode(gormlogger.Info)
	verbose.Trace(context.Background(), time.Now(), sql, nil)
	assert.Equal(t, 2, logs.Len())

	gl.LogMode(gormlogger.Silent).Error(context.Background(), "ignored")
	assert.Equal(t, 2, logs.Len())
}
