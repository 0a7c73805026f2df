package logger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{in: "debug", want: zapcore.DebugLevel},
		{in: "", want: zapcore.InfoLevel},
		{in: "INFO", want: zapcore.InfoLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "loud", want: zapcore.InfoLevel, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLogLevel)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, err := New(&Config{Level: "debug", Format: "json", Output: path}, DefaultServiceName)
	require.NoError(t, err)
	l.Debug("hello")
	_ = l.Sync()

	assert.FileExists(t, path)
}

func TestNew_RejectsBadLevel(t *testing.T) {
	_, err := New(&Config{Level: "chatty"}, DefaultServiceName)
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestNew_NilConfig(t *testing.T) {
	l, err := New(nil, DefaultServiceName)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestGormLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := NewGormLogger(zap.New(core), 100*time.Millisecond)
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	g.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len(), "not found is not logged")

	g.Trace(ctx, time.Now(), query, errors.New("connection reset"))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "query failed", logs.All()[0].Message)
	assert.Equal(t, "SELECT 1", logs.All()[0].ContextMap()["sql"])

	g.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "slow query", logs.All()[1].Message)

	g.Trace(ctx, time.Now(), query, nil)
	assert.Equal(t, 2, logs.Len(), "fast queries stay quiet at warn")

	silent := g.LogMode(gormlogger.Silent)
	silent.Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Equal(t, 2, logs.Len())

	verbose := g.LogMode(gormlogger.Info)
	verbose.Trace(ctx, time.Now(), query, nil)
	assert.Equal(t, 3, logs.Len())
}
