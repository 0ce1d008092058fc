package postgres

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBufferedGormLogger(debug bool) (*gormSlogLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg).(*gormSlogLogger), buf
}

func TestGormSlogLogger_TraceLogsFailures(t *testing.T) {
	l, buf := newBufferedGormLogger(false)
	sqlFn := func() (string, int64) { return "SELECT 1", 0 }

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "SELECT 1")
}

func TestGormSlogLogger_IgnoresRecordNotFound(t *testing.T) {
	l, buf := newBufferedGormLogger(false)
	sqlFn := func() (string, int64) { return "SELECT * FROM carts", 0 }

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_SlowQueries(t *testing.T) {
	l, buf := newBufferedGormLogger(false)
	sqlFn := func() (string, int64) { return "SELECT pg_sleep(1)", 1 }

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_QueriesOnlyInDebug(t *testing.T) {
	sqlFn := func() (string, int64) { return "SELECT 1", 1 }

	quiet, quietBuf := newBufferedGormLogger(false)
	quiet.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Empty(t, quietBuf.String())

	verbose, verboseBuf := newBufferedGormLogger(true)
	verbose.Trace(context.Background(), time.Now(), sqlFn, nil)
	assert.Contains(t, verboseBuf.String(), `"msg":"GORM query"`)
}
