package oteladapters_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/log/noop"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch/oteladapters"
)

func Test_NewSlogBridgeLogger_Construction(t *testing.T) {
	logger := oteladapters.NewSlogBridgeLogger("test")
	assert.NotNil(t, logger)
}

func Test_SlogBridgeLogger_AllLevels(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.DebugContext(ctx, "debug message", "level", "debug")
	logger.InfoContext(ctx, "info message", "level", "info")
	logger.WarnContext(ctx, "warn message", "level", "warn")
	logger.ErrorContext(ctx, "error message", "level", "error")

	// assert
	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
	assert.Contains(t, output, `"level":"debug"`)
	assert.Contains(t, output, `"level":"info"`)
	assert.Contains(t, output, `"level":"warn"`)
	assert.Contains(t, output, `"level":"error"`)
}

func Test_SlogBridgeLogger_WithAttributes(t *testing.T) {
	// arrange
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, nil)
	logger := oteladapters.NewSlogBridgeLoggerWithHandler(handler)
	ctx := context.Background()

	// act
	logger.InfoContext(ctx, "test message",
		"string_attr", "value1",
		"int_attr", 42,
		"float_attr", 3.14,
		"bool_attr", true,
	)

	// assert
	output := buf.String()
	assert.Contains(t, output, "test message")
	assert.Contains(t, output, `"string_attr":"value1"`)
	assert.Contains(t, output, `"int_attr":42`)
	assert.Contains(t, output, `"float_attr":3.14`)
	assert.Contains(t, output, `"bool_attr":true`)
}

func Test_NewOTelLogger_Construction(t *testing.T) {
	otelLogger := noop.NewLoggerProvider().Logger("test")

	logger := oteladapters.NewOTelLogger(otelLogger)
	assert.NotNil(t, logger)
}

func Test_OTelLogger_AllLevels(t *testing.T) {
	otelLogger := noop.NewLoggerProvider().Logger("test")
	logger := oteladapters.NewOTelLogger(otelLogger)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		logger.DebugContext(ctx, "debug message", "test_key", "debug_value")
	})
	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "info message", "test_key", "info_value")
	})
	assert.NotPanics(t, func() {
		logger.WarnContext(ctx, "warn message", "test_key", "warn_value")
	})
	assert.NotPanics(t, func() {
		logger.ErrorContext(ctx, "error message", "test_key", "error_value")
	})
}

func Test_OTelLogger_ArgumentHandling(t *testing.T) {
	otelLogger := noop.NewLoggerProvider().Logger("test")
	logger := oteladapters.NewOTelLogger(otelLogger)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "test message",
			"string", "text_value",
			"number", 123,
			"float", 45.67,
			"boolean", false,
		)
	})

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "test message", "key1", "value1", "key2")
	})

	assert.NotPanics(t, func() {
		logger.InfoContext(ctx, "simple message")
	})
}
