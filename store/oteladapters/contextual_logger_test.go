package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/AntonStoeckl/bookstore/store/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")
	assert.NotNil(t, logger)
}

func Test_SlogBridgeLoggerWithProvider_AllLevels(t *testing.T) {
	// setup
	logger := oteladapters.NewSlogBridgeLoggerWithProvider("test", noop.NewLoggerProvider())
	ctx := context.Background()

	// act / assert
	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug message", "book_id", "b-1")
		logger.InfoContext(ctx, "info message", "book_id", "b-1")
		logger.WarnContext(ctx, "warn message", "book_id", "b-1")
		logger.ErrorContext(ctx, "error message", "book_id", "b-1")
		logger.InfoContext(ctx, "odd args", "key")
	})
}

func Test_SlogBridgeLoggerWithHandler_AllLevels(t *testing.T) {
	// setup
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message")
	logger.InfoContext(ctx, "info message", "orders", 3)
	logger.WarnContext(ctx, "warn message")
	logger.ErrorContext(ctx, "error message", "reason", "conflict")

	// assert
	output := buf.String()
	assert.Contains(t, output, `"level":"DEBUG"`)
	assert.Contains(t, output, `"msg":"info message"`)
	assert.Contains(t, output, `"orders":3`)
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"reason":"conflict"`)
}
