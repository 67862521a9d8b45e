package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/bookstore/store/oteladapters"
)

func Test_TracingCollector_StatusMapping(t *testing.T) {
	// setup
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	testCases := []struct {
		status              string
		expectedCode        codes.Code
		expectedDescription string
	}{
		{"success", codes.Ok, ""},
		{"error", codes.Error, "operation failed"},
		{"canceled", codes.Error, "operation canceled"},
		{"timeout", codes.Error, "operation timed out"},
		{"concurrency_conflict", codes.Error, "concurrency conflict"},
		{"not_found", codes.Unset, ""},
		{"idempotent", codes.Unset, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			exporter.Reset()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "store.get_book", map[string]string{"operation": "get_book"})
			collector.FinishSpan(spanCtx, tc.status, map[string]string{"rows": "1"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1, "expected exactly one span")
			assert.Equal(t, "store.get_book", spans[0].Name)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Equal(t, tc.expectedDescription, spans[0].Status.Description)
		})
	}
}

func Test_TracingCollector_StartSpan_NestsUnderParent(t *testing.T) {
	// setup
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	// act
	parentCtx, parent := collector.StartSpan(context.Background(), "command.create_order", nil)
	_, child := collector.StartSpan(parentCtx, "store.place_order", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID(), "spans should share a trace")
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID(), "child should point to parent")
}

func Test_SlogBridgeLoggerWithHandler_WritesToHandler(t *testing.T) {
	// setup
	var buf bytes.Buffer
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// act
	logger.InfoContext(context.Background(), "store operation: place_order", "rows", 1)

	// assert
	assert.Contains(t, buf.String(), `"msg":"store operation: place_order"`)
	assert.Contains(t, buf.String(), `"rows":1`)
}
