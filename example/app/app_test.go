package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/authorize"
	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
	"github.com/dispatchkit/cqrs-dispatch-go/example/app"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/cancelorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/orderstatus"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/placeorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/shiporder"
	"github.com/dispatchkit/cqrs-dispatch-go/history"
)

// memoryArchive is an in-memory stand-in for the Postgres envelope archive.
type memoryArchive struct {
	mu      sync.Mutex
	streams map[string]history.StorableEnvelopes
}

func newMemoryArchive() *memoryArchive {
	return &memoryArchive{streams: make(map[string]history.StorableEnvelopes)}
}

func (a *memoryArchive) QueryByAggregate(_ context.Context, aggregateID string) (
	history.StorableEnvelopes,
	history.MaxSequenceNumberUint,
	error,
) {
	a.mu.Lock()
	defer a.mu.Unlock()

	stream := a.streams[aggregateID]
	envelopes := make(history.StorableEnvelopes, len(stream))
	copy(envelopes, stream)

	var maxSequenceNumber history.MaxSequenceNumberUint
	if len(stream) > 0 {
		maxSequenceNumber = stream[len(stream)-1].Sequence
	}

	return envelopes, maxSequenceNumber, nil
}

func (a *memoryArchive) Append(
	_ context.Context,
	expectedMaxSequenceNumber history.MaxSequenceNumberUint,
	envelope history.StorableEnvelope,
	additionalEnvelopes ...history.StorableEnvelope,
) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	stream := a.streams[envelope.AggregateID]

	var currentMax history.MaxSequenceNumberUint
	if len(stream) > 0 {
		currentMax = stream[len(stream)-1].Sequence
	}

	if currentMax != expectedMaxSequenceNumber {
		return history.ErrSequenceConflict
	}

	stream = append(stream, envelope)
	stream = append(stream, additionalEnvelopes...)
	a.streams[envelope.AggregateID] = stream

	return nil
}

func (a *memoryArchive) envelopeCount(aggregateID string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.streams[aggregateID])
}

func givenWiredApp(t *testing.T) (*app.App, *memoryArchive) {
	t.Helper()

	archive := newMemoryArchive()
	application, err := app.Build(archive)
	require.NoError(t, err)

	return application, archive
}

func Test_App_PlaceShipAndQueryOrder(t *testing.T) {
	// arrange
	application, _ := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()
	customerID := uuid.New()

	// act
	err := application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, customerID, 4999, time.Now()))
	require.NoError(t, err)

	err = application.CommandBus.Send(ctx, shiporder.BuildCommand(orderID, "track-42", time.Now()))
	require.NoError(t, err)

	result, err := dispatch.ExecuteAs[orderstatus.Result](ctx, application.QueryProcessor, orderstatus.BuildQuery(orderID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderID.String(), result.OrderID)
	assert.Equal(t, orderstatus.StatusShipped, result.Status)
	assert.Equal(t, int64(4999), result.AmountCents)
	assert.Equal(t, "track-42", result.TrackingID)
}

func Test_App_CancelPlacedOrder(t *testing.T) {
	// arrange
	application, _ := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()

	err := application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, uuid.New(), 100, time.Now()))
	require.NoError(t, err)

	// act
	err = application.CommandBus.Send(ctx, cancelorder.BuildCommand(orderID, "changed my mind", time.Now()))
	require.NoError(t, err)

	result, err := dispatch.ExecuteAs[orderstatus.Result](ctx, application.QueryProcessor, orderstatus.BuildQuery(orderID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusCanceled, result.Status)
	assert.Equal(t, "changed my mind", result.CancelReason)
}

func Test_App_CancelUnknownOrder_IsNoOp(t *testing.T) {
	// arrange
	application, archive := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()

	// act
	err := application.CommandBus.Send(ctx, cancelorder.BuildCommand(orderID, "never placed", time.Now()))

	// assert
	require.NoError(t, err)
	assert.Zero(t, archive.envelopeCount(orderID.String()))
}

func Test_App_ShippedOrderCanNotBeCanceled(t *testing.T) {
	// arrange
	application, _ := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()

	require.NoError(t, application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, uuid.New(), 100, time.Now())))
	require.NoError(t, application.CommandBus.Send(ctx, shiporder.BuildCommand(orderID, "track-1", time.Now())))

	// act
	err := application.CommandBus.Send(ctx, cancelorder.BuildCommand(orderID, "too late", time.Now()))

	// assert
	require.NoError(t, err)

	result, err := dispatch.ExecuteAs[orderstatus.Result](ctx, application.QueryProcessor, orderstatus.BuildQuery(orderID))
	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusShipped, result.Status)
}

func Test_App_PlaceOrder_IsIdempotent(t *testing.T) {
	// arrange
	application, archive := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()
	command := placeorder.BuildCommand(orderID, uuid.New(), 100, time.Now())

	// act
	require.NoError(t, application.CommandBus.Send(ctx, command))
	require.NoError(t, application.CommandBus.Send(ctx, command))

	// assert
	assert.Equal(t, 1, archive.envelopeCount(orderID.String()))
}

func Test_App_PlaceOrder_DeniedForZeroAmount(t *testing.T) {
	// arrange
	application, archive := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()

	// act
	err := application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, uuid.New(), 0, time.Now()))

	// assert
	require.Error(t, err)

	var denial *authorize.AuthorizationError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, "amount_is_positive", denial.RuleName)
	assert.Zero(t, archive.envelopeCount(orderID.String()), "a denied command must not reach the handler")
}

func Test_App_PlaceOrder_DeniedAboveApprovalLimit(t *testing.T) {
	// arrange
	application, _ := givenWiredApp(t)
	ctx := context.Background()

	// act
	err := application.CommandBus.Send(ctx,
		placeorder.BuildCommand(uuid.New(), uuid.New(), app.DefaultOrderLimitCents+1, time.Now()))

	// assert
	var denial *authorize.AuthorizationError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, "amount_within_limit", denial.RuleName)
}

func Test_App_CancelOrder_DeniedWithoutReason(t *testing.T) {
	// arrange
	application, _ := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()

	require.NoError(t, application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, uuid.New(), 100, time.Now())))

	// act
	err := application.CommandBus.Send(ctx, cancelorder.BuildCommand(orderID, "", time.Now()))

	// assert
	var denial *authorize.AuthorizationError
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, "reason_is_given", denial.RuleName)
}

func Test_App_AuditTrail_RecordsLifecycleEvents(t *testing.T) {
	// arrange
	application, _ := givenWiredApp(t)
	ctx := context.Background()
	orderID := uuid.New()

	// act
	require.NoError(t, application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, uuid.New(), 100, time.Now())))
	require.NoError(t, application.CommandBus.Send(ctx, shiporder.BuildCommand(orderID, "track-7", time.Now())))

	// assert
	records := application.AuditTrail.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "order.placed", records[0].EventType)
	assert.Equal(t, "order.shipped", records[1].EventType)
}
