package dispatch

import (
	"context"
	"errors"
	"time"
)

// deniedError is implemented by authorization errors so the logging
// decorator can classify them without depending on their package.
type deniedError interface {
	AuthorizationDenied() bool
}

func statusForError(err error) string {
	var denied deniedError
	switch {
	case errors.As(err, &denied) && denied.AuthorizationDenied():
		return StatusUnauthorized
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	default:
		return StatusError
	}
}

// CommandLogging provides observability instrumentation as a command decorator.
// It records start, elapsed duration, and any escaped failure through the
// configured logger, metrics, and tracing collaborators, then re-raises the
// failure unchanged. It never swallows or transforms errors.
type CommandLogging struct {
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
	logger           Logger
}

// LoggingOption defines a functional option shared by CommandLogging and QueryLogging.
type LoggingOption func(*loggingConfig)

type loggingConfig struct {
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
	logger           Logger
}

// WithLoggingMetrics sets the metrics collector for a logging decorator.
func WithLoggingMetrics(collector MetricsCollector) LoggingOption {
	return func(c *loggingConfig) {
		c.metricsCollector = collector
	}
}

// WithLoggingTracing sets the tracing collector for a logging decorator.
func WithLoggingTracing(collector TracingCollector) LoggingOption {
	return func(c *loggingConfig) {
		c.tracingCollector = collector
	}
}

// WithLoggingContextualLogger sets the contextual logger for a logging decorator.
func WithLoggingContextualLogger(logger ContextualLogger) LoggingOption {
	return func(c *loggingConfig) {
		c.contextualLogger = logger
	}
}

// WithLoggingLogger sets the basic logger for a logging decorator.
func WithLoggingLogger(logger Logger) LoggingOption {
	return func(c *loggingConfig) {
		c.logger = logger
	}
}

// NewCommandLogging creates a logging decorator for command handlers.
func NewCommandLogging(options ...LoggingOption) CommandLogging {
	cfg := loggingConfig{}
	for _, option := range options {
		option(&cfg)
	}

	return CommandLogging{
		metricsCollector: cfg.metricsCollector,
		tracingCollector: cfg.tracingCollector,
		contextualLogger: cfg.contextualLogger,
		logger:           cfg.logger,
	}
}

// Decorate wraps the inner handler with logging, metrics, and tracing instrumentation.
// The inner handler is invoked exactly once per call.
func (l CommandLogging) Decorate(next CommandHandler) CommandHandler {
	return CommandHandlerFunc(func(ctx context.Context, command Command) error {
		commandType := command.CommandType()

		start := time.Now()
		ctx, span := StartCommandSpan(ctx, l.tracingCollector, commandType)
		LogCommandStart(ctx, l.logger, l.contextualLogger, commandType)

		err := next.Handle(ctx, command)
		duration := time.Since(start)

		if err != nil {
			status := statusForError(err)
			RecordCommandMetrics(ctx, l.metricsCollector, commandType, status, duration)
			FinishCommandSpan(l.tracingCollector, span, status, duration, err)
			LogCommandError(ctx, l.logger, l.contextualLogger, commandType, err)

			return err
		}

		RecordCommandMetrics(ctx, l.metricsCollector, commandType, StatusSuccess, duration)
		FinishCommandSpan(l.tracingCollector, span, StatusSuccess, duration, nil)
		LogCommandSuccess(ctx, l.logger, l.contextualLogger, commandType, duration)

		return nil
	})
}

// QueryLogging provides observability instrumentation as a query decorator.
// Identical discipline to CommandLogging: records start, elapsed duration, and
// any escaped failure, then re-raises the failure unchanged.
type QueryLogging struct {
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
	logger           Logger
}

// NewQueryLogging creates a logging decorator for query handlers.
func NewQueryLogging(options ...LoggingOption) QueryLogging {
	cfg := loggingConfig{}
	for _, option := range options {
		option(&cfg)
	}

	return QueryLogging{
		metricsCollector: cfg.metricsCollector,
		tracingCollector: cfg.tracingCollector,
		contextualLogger: cfg.contextualLogger,
		logger:           cfg.logger,
	}
}

// Decorate wraps the inner handler with logging, metrics, and tracing instrumentation.
// The inner handler is invoked exactly once per call.
func (l QueryLogging) Decorate(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (any, error) {
		queryType := query.QueryType()

		start := time.Now()
		ctx, span := StartQuerySpan(ctx, l.tracingCollector, queryType)
		LogQueryStart(ctx, l.logger, l.contextualLogger, queryType)

		result, err := next.Read(ctx, query)
		duration := time.Since(start)

		if err != nil {
			status := statusForError(err)
			RecordQueryMetrics(ctx, l.metricsCollector, queryType, status, duration)
			FinishQuerySpan(l.tracingCollector, span, status, duration, err)
			LogQueryError(ctx, l.logger, l.contextualLogger, queryType, err)

			return nil, err
		}

		RecordQueryMetrics(ctx, l.metricsCollector, queryType, StatusSuccess, duration)
		FinishQuerySpan(l.tracingCollector, span, StatusSuccess, duration, nil)
		LogQuerySuccess(ctx, l.logger, l.contextualLogger, queryType, duration)

		return result, nil
	})
}
