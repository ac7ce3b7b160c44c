package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
	"github.com/dispatchkit/cqrs-dispatch-go/testutil/testdoubles"
)

type deniedForTest struct{}

func (deniedForTest) Error() string             { return "denied" }
func (deniedForTest) AuthorizationDenied() bool { return true }

func Test_CommandLogging_Success(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy()
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()

	decorator := dispatch.NewCommandLogging(
		dispatch.WithLoggingContextualLogger(logger),
		dispatch.WithLoggingMetrics(metrics),
		dispatch.WithLoggingTracing(tracing),
	)

	invocations := 0
	handler := decorator.Decorate(dispatch.CommandHandlerFunc(
		func(context.Context, dispatch.Command) error {
			invocations++
			return nil
		},
	))

	// act
	err := handler.Handle(context.Background(), placeOrderCommand{OrderID: "o-1"})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, invocations)

	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, dispatch.LogMsgCommandStarted, records[0].Message)
	assert.Equal(t, dispatch.LogMsgCommandCompleted, records[1].Message)

	durations := metrics.DurationRecords()
	require.Len(t, durations, 1)
	assert.Equal(t, dispatch.CommandDispatchDurationMetric, durations[0].Metric)
	assert.Equal(t, dispatch.StatusSuccess, durations[0].Labels[dispatch.LogAttrStatus])

	counters := metrics.CounterRecords()
	require.Len(t, counters, 1)
	assert.Equal(t, dispatch.CommandDispatchCallsMetric, counters[0].Metric)

	spans := tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, dispatch.SpanNameCommandHandle, spans[0].Name)
	assert.Equal(t, dispatch.StatusSuccess, spans[0].Status)
	assert.True(t, spans[0].Finished)
}

func Test_CommandLogging_FailureIsReRaisedUnchanged(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy()
	metrics := testdoubles.NewMetricsCollectorSpy()

	decorator := dispatch.NewCommandLogging(
		dispatch.WithLoggingContextualLogger(logger),
		dispatch.WithLoggingMetrics(metrics),
	)

	handlerErr := errors.New("out of stock")
	handler := decorator.Decorate(dispatch.CommandHandlerFunc(
		func(context.Context, dispatch.Command) error {
			return handlerErr
		},
	))

	// act
	err := handler.Handle(context.Background(), placeOrderCommand{})

	// assert: the exact error escapes, not a wrapped or converted one
	assert.Equal(t, handlerErr, err)

	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, dispatch.LogMsgCommandFailed, records[1].Message)
	assert.Equal(t, "error", records[1].Level)

	durations := metrics.DurationRecords()
	require.Len(t, durations, 1)
	assert.Equal(t, dispatch.StatusError, durations[0].Labels[dispatch.LogAttrStatus])
}

func Test_CommandLogging_StatusClassification(t *testing.T) {
	testCases := []struct {
		name           string
		handlerErr     error
		expectedStatus string
	}{
		{
			name:           "canceled",
			handlerErr:     context.Canceled,
			expectedStatus: dispatch.StatusCanceled,
		},
		{
			name:           "timeout",
			handlerErr:     context.DeadlineExceeded,
			expectedStatus: dispatch.StatusTimeout,
		},
		{
			name:           "unauthorized",
			handlerErr:     deniedForTest{},
			expectedStatus: dispatch.StatusUnauthorized,
		},
		{
			name:           "plain error",
			handlerErr:     errors.New("boom"),
			expectedStatus: dispatch.StatusError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metrics := testdoubles.NewMetricsCollectorSpy()
			decorator := dispatch.NewCommandLogging(dispatch.WithLoggingMetrics(metrics))

			handler := decorator.Decorate(dispatch.CommandHandlerFunc(
				func(context.Context, dispatch.Command) error {
					return tc.handlerErr
				},
			))

			err := handler.Handle(context.Background(), placeOrderCommand{})
			assert.Equal(t, tc.handlerErr, err)

			durations := metrics.DurationRecords()
			require.Len(t, durations, 1)
			assert.Equal(t, tc.expectedStatus, durations[0].Labels[dispatch.LogAttrStatus])
		})
	}
}

func Test_CommandLogging_BasicLoggerFallback(t *testing.T) {
	// arrange: no contextual logger configured
	logger := testdoubles.NewLoggerSpy()
	decorator := dispatch.NewCommandLogging(dispatch.WithLoggingLogger(logger))

	handler := decorator.Decorate(dispatch.CommandHandlerFunc(
		func(context.Context, dispatch.Command) error {
			return nil
		},
	))

	// act
	err := handler.Handle(context.Background(), placeOrderCommand{})

	// assert
	require.NoError(t, err)
	assert.Len(t, logger.Records(), 2)
}

func Test_QueryLogging_Success(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy()
	metrics := testdoubles.NewMetricsCollectorSpy()
	tracing := testdoubles.NewTracingCollectorSpy()

	decorator := dispatch.NewQueryLogging(
		dispatch.WithLoggingContextualLogger(logger),
		dispatch.WithLoggingMetrics(metrics),
		dispatch.WithLoggingTracing(tracing),
	)

	handler := decorator.Decorate(dispatch.QueryHandlerFunc(
		func(context.Context, dispatch.Query) (any, error) {
			return orderStatusResult{Status: "shipped"}, nil
		},
	))

	// act
	result, err := handler.Read(context.Background(), orderStatusQuery{OrderID: "o-1"})

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderStatusResult{Status: "shipped"}, result)

	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, dispatch.LogMsgQueryStarted, records[0].Message)
	assert.Equal(t, dispatch.LogMsgQueryCompleted, records[1].Message)

	spans := tracing.Spans()
	require.Len(t, spans, 1)
	assert.Equal(t, dispatch.SpanNameQueryHandle, spans[0].Name)
}

func Test_QueryLogging_FailureIsReRaisedUnchanged(t *testing.T) {
	// arrange
	logger := testdoubles.NewContextualLoggerSpy()
	decorator := dispatch.NewQueryLogging(dispatch.WithLoggingContextualLogger(logger))

	handlerErr := errors.New("read model unavailable")
	handler := decorator.Decorate(dispatch.QueryHandlerFunc(
		func(context.Context, dispatch.Query) (any, error) {
			return nil, handlerErr
		},
	))

	// act
	result, err := handler.Read(context.Background(), orderStatusQuery{})

	// assert
	assert.Nil(t, result)
	assert.Equal(t, handlerErr, err)

	records := logger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, dispatch.LogMsgQueryFailed, records[1].Message)
}
