package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"bridge/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCapturingLogger(t *testing.T, cfg *config.Config) (logger.Interface, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	base := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg), buf
}

func sqlFn() (string, int64) {
	return "SELECT * FROM reviews", 3
}

func TestGormSlogLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("errors are logged except record not found", func(t *testing.T) {
		l, buf := newCapturingLogger(t, &config.Config{})

		l.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
		assert.Empty(t, buf.String())

		l.Trace(ctx, time.Now(), sqlFn, errors.New("boom"))
		assert.Contains(t, buf.String(), "GORM query failed")
		assert.Contains(t, buf.String(), "component=gorm")
		assert.Contains(t, buf.String(), "error=boom")
	})

	t.Run("slow queries use the configured threshold", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.Storage.SlowQueryThreshold = time.Millisecond
		l, buf := newCapturingLogger(t, cfg)

		l.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)
		assert.Contains(t, buf.String(), "GORM slow query")
		assert.Contains(t, buf.String(), "rows=3")
	})

	t.Run("plain queries only in debug", func(t *testing.T) {
		l, buf := newCapturingLogger(t, &config.Config{})
		l.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Empty(t, buf.String())

		cfg := &config.Config{}
		cfg.Env.Debug = true
		l, buf = newCapturingLogger(t, cfg)
		l.Trace(ctx, time.Now(), sqlFn, nil)
		assert.Contains(t, buf.String(), "GORM query")
	})

	t.Run("silent mode logs nothing", func(t *testing.T) {
		l, buf := newCapturingLogger(t, &config.Config{})
		l.LogMode(logger.Silent).Trace(ctx, time.Now(), sqlFn, errors.New("boom"))
		assert.Empty(t, buf.String())
	})
}
