package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/library-catalog-go/app/shell/oteladapters"
)

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "operation_type", "Borrow")
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG","msg":"debug message"`)
	assert.Contains(t, output, `"level":"INFO","msg":"info message","operation_type":"Borrow"`)
	assert.Contains(t, output, `"level":"WARN","msg":"warn message"`)
	assert.Contains(t, output, `"level":"ERROR","msg":"error message"`)
}

func Test_NewSlogBridgeLogger_UsesGlobalProvider(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("library-catalog")

	assert.NotPanics(t, func() {
		logger.InfoContext(context.Background(), "catalog operation started")
	})
}

func Test_SlogBridgeLoggerTee_WritesLocallyAndToBridge(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	emitted := &loggerSpy{}
	logger := oteladapters.NewSlogBridgeLoggerTee(
		slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		"library-catalog",
		otelslog.WithLoggerProvider(loggerProviderSpy{logger: emitted}),
	)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "catalog operation completed", "operation_type", "Borrow")

	// assert
	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, `"msg":"catalog operation completed","operation_type":"Borrow"`)
	bodies := emitted.Bodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, []string{"debug message", "catalog operation completed"}, bodies)
}

func Test_OTelLogger_ArgumentHandling(t *testing.T) {
	// arrange
	logger := oteladapters.NewOTelLogger(noop.NewLoggerProvider().Logger("test"))
	ctx := context.Background()

	// act & assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug message", "count", 3)
		logger.InfoContext(ctx, "info message", "duration_ms", 1.5, "idempotent", false)
		logger.WarnContext(ctx, "warn message", "key_without_value")
		logger.ErrorContext(ctx, "error message", 42, "non-string key is skipped")
	})
}

type loggerProviderSpy struct {
	embedded.LoggerProvider

	logger *loggerSpy
}

func (p loggerProviderSpy) Logger(_ string, _ ...log.LoggerOption) log.Logger {
	return p.logger
}

type loggerSpy struct {
	embedded.Logger

	mu     sync.Mutex
	bodies []string
}

func (l *loggerSpy) Emit(_ context.Context, record log.Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bodies = append(l.bodies, record.Body().AsString())
}

func (l *loggerSpy) Enabled(_ context.Context, _ log.EnabledParameters) bool {
	return true
}

func (l *loggerSpy) Bodies() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.bodies...)
}
