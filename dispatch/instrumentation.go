package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// CommandDispatchDurationMetric tracks command dispatch duration (OpenTelemetry-compatible).
	CommandDispatchDurationMetric = "commandbus_send_duration_seconds"

	// CommandDispatchCallsMetric tracks total command dispatches.
	CommandDispatchCallsMetric = "commandbus_send_calls_total"

	// QueryDispatchDurationMetric tracks query dispatch duration (OpenTelemetry-compatible).
	QueryDispatchDurationMetric = "queryprocessor_execute_duration_seconds"

	// QueryDispatchCallsMetric tracks total query dispatches.
	QueryDispatchCallsMetric = "queryprocessor_execute_calls_total"

	// StatusSuccess indicates successful message handling.
	StatusSuccess = "success"

	// StatusError indicates a message handling error.
	StatusError = "error"

	// StatusCanceled indicates the operation was canceled due to context cancellation.
	StatusCanceled = "canceled"

	// StatusTimeout indicates the operation timed out due to context deadline exceeded.
	StatusTimeout = "timeout"

	// StatusUnauthorized indicates the message failed an authorization check.
	StatusUnauthorized = "unauthorized"

	// LogMsgCommandStarted is logged when command handling begins.
	LogMsgCommandStarted = "command handling started"

	// LogMsgCommandCompleted is logged when command handling succeeds.
	LogMsgCommandCompleted = "command handling completed"

	// LogMsgCommandFailed is logged when command handling fails.
	LogMsgCommandFailed = "command handling failed"

	// LogMsgQueryStarted is logged when query handling begins.
	LogMsgQueryStarted = "query handling started"

	// LogMsgQueryCompleted is logged when query handling succeeds.
	LogMsgQueryCompleted = "query handling completed"

	// LogMsgQueryFailed is logged when query handling fails.
	LogMsgQueryFailed = "query handling failed"

	// LogAttrCommandType identifies the command type in logs and metric labels.
	LogAttrCommandType = "command_type"

	// LogAttrQueryType identifies the query type in logs and metric labels.
	LogAttrQueryType = "query_type"

	// LogAttrStatus indicates the message handling status.
	LogAttrStatus = "status"

	// LogAttrDurationMS indicates the handling duration in milliseconds.
	LogAttrDurationMS = "duration_ms"

	// LogAttrError contains error details.
	LogAttrError = "error"

	// SpanNameCommandHandle is the tracing span name for command handling.
	SpanNameCommandHandle = "commandbus.send"

	// SpanNameQueryHandle is the tracing span name for query handling.
	SpanNameQueryHandle = "queryprocessor.execute"
)

// BuildCommandLabels creates standard metric labels for command dispatch operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildQueryLabels creates standard metric labels for query dispatch operations.
func BuildQueryLabels(queryType, status string) map[string]string {
	return map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records duration and call-count metrics for a command dispatch.
// It handles both context-aware and basic metrics collectors automatically.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, CommandDispatchDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, CommandDispatchCallsMetric, labels)
	} else {
		collector.RecordDuration(CommandDispatchDurationMetric, duration, labels)
		collector.IncrementCounter(CommandDispatchCallsMetric, labels)
	}
}

// RecordQueryMetrics records duration and call-count metrics for a query dispatch.
// It handles both context-aware and basic metrics collectors automatically.
func RecordQueryMetrics(
	ctx context.Context,
	collector MetricsCollector,
	queryType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildQueryLabels(queryType, status)

	if contextualCollector, ok := collector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, QueryDispatchDurationMetric, duration, labels)
		contextualCollector.IncrementCounterContext(ctx, QueryDispatchCallsMetric, labels)
	} else {
		collector.RecordDuration(QueryDispatchDurationMetric, duration, labels)
		collector.IncrementCounter(QueryDispatchCallsMetric, labels)
	}
}

// StartCommandSpan starts a distributed tracing span for command dispatch.
// Returns the updated context and span context, or the original context and nil
// if tracing is disabled.
func StartCommandSpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	commandType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{
		LogAttrCommandType: commandType,
	}

	return tracingCollector.StartSpan(ctx, SpanNameCommandHandle, attrs)
}

// FinishCommandSpan completes a distributed tracing span with the dispatch outcome.
func FinishCommandSpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// StartQuerySpan starts a distributed tracing span for query dispatch.
// Returns the updated context and span context, or the original context and nil
// if tracing is disabled.
func StartQuerySpan(
	ctx context.Context,
	tracingCollector TracingCollector,
	queryType string,
) (context.Context, SpanContext) {
	if tracingCollector == nil {
		return ctx, nil
	}

	attrs := map[string]string{
		LogAttrQueryType: queryType,
	}

	return tracingCollector.StartSpan(ctx, SpanNameQueryHandle, attrs)
}

// FinishQuerySpan completes a distributed tracing span with the dispatch outcome.
func FinishQuerySpan(
	tracingCollector TracingCollector,
	span SpanContext,
	status string,
	duration time.Duration,
	err error,
) {
	if tracingCollector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: formatDurationMS(duration),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	tracingCollector.FinishSpan(span, status, attrs)
}

// LogCommandStart logs the beginning of command handling.
func LogCommandStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType)
	} else if logger != nil {
		logger.Info(LogMsgCommandStarted, LogAttrCommandType, commandType)
	}
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandCompleted, args...)
	}
}

// LogCommandError logs command handling errors.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrError, err.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgCommandFailed, args...)
	}
}

// LogQueryStart logs the beginning of query handling.
func LogQueryStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryStarted, LogAttrQueryType, queryType)
	} else if logger != nil {
		logger.Info(LogMsgQueryStarted, LogAttrQueryType, queryType)
	}
}

// LogQuerySuccess logs successful query completion.
func LogQuerySuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	duration time.Duration,
) {
	args := []any{
		LogAttrQueryType, queryType,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgQueryCompleted, args...)
	}
}

// LogQueryError logs query handling errors.
func LogQueryError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	err error,
) {
	args := []any{
		LogAttrQueryType, queryType,
		LogAttrError, err.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgQueryFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgQueryFailed, args...)
	}
}

// formatDurationMS formats duration in milliseconds for span attributes.
func formatDurationMS(duration time.Duration) string {
	return fmt.Sprintf("%.2f", ToMilliseconds(duration))
}

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
