package history_test

import (
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
	"github.com/dispatchkit/cqrs-dispatch-go/history"
)

type plainEvent struct {
	OrderID string
}

func (e plainEvent) EventType() string {
	return "order.placed"
}

type selfSerializingEvent struct {
	OrderID string
	fail    bool
}

func (e selfSerializingEvent) EventType() string {
	return "order.canceled"
}

func (e selfSerializingEvent) PayloadToJSON() ([]byte, error) {
	if e.fail {
		return nil, errors.New("serialization broken")
	}

	return jsoniter.ConfigFastest.Marshal(struct{ OrderID string }{OrderID: e.OrderID})
}

func Test_BuildStorableEnvelope(t *testing.T) {
	// arrange
	createdAt := time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

	// act
	envelope, err := history.BuildStorableEnvelope(
		"0190e5a4-0000-7000-8000-000000000001",
		"order-1", 4, 2, "order.placed",
		[]byte(`{"OrderID": "order-1"}`),
		createdAt,
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "order-1", envelope.AggregateID)
	assert.Equal(t, uint64(4), envelope.Sequence)
	assert.Equal(t, uint64(2), envelope.AggregateVersion)
	assert.Equal(t, "order.placed", envelope.EventType)
	assert.Equal(t, createdAt, envelope.CreatedAt)
}

func Test_BuildStorableEnvelope_Validation(t *testing.T) {
	testCases := []struct {
		name        string
		eventID     string
		aggregateID string
		eventType   string
		payloadJSON []byte
		expectedErr error
	}{
		{
			name:        "empty event id",
			eventID:     "",
			aggregateID: "order-1",
			eventType:   "order.placed",
			payloadJSON: []byte(`{}`),
			expectedErr: history.ErrEmptyEventID,
		},
		{
			name:        "empty aggregate id",
			eventID:     "some-id",
			aggregateID: "",
			eventType:   "order.placed",
			payloadJSON: []byte(`{}`),
			expectedErr: history.ErrEmptyAggregateID,
		},
		{
			name:        "empty event type",
			eventID:     "some-id",
			aggregateID: "order-1",
			eventType:   "",
			payloadJSON: []byte(`{}`),
			expectedErr: history.ErrEmptyEventType,
		},
		{
			name:        "invalid payload json",
			eventID:     "some-id",
			aggregateID: "order-1",
			eventType:   "order.placed",
			payloadJSON: []byte(`{not valid`),
			expectedErr: history.ErrInvalidPayloadJSON,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := history.BuildStorableEnvelope(
				tc.eventID, tc.aggregateID, 1, 1, tc.eventType, tc.payloadJSON, time.Now(),
			)

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_StorableEnvelopeFrom_PlainEvent(t *testing.T) {
	// arrange
	envelope, err := eventbus.BuildEventEnvelopeWithNewID(
		"order-1", 4, 2, plainEvent{OrderID: "order-1"}, time.Now(),
	)
	require.NoError(t, err)

	// act
	storable, err := history.StorableEnvelopeFrom(envelope)

	// assert
	require.NoError(t, err)
	assert.Equal(t, envelope.EventID.String(), storable.EventID)
	assert.Equal(t, "order-1", storable.AggregateID)
	assert.Equal(t, uint64(4), storable.Sequence)
	assert.Equal(t, "order.placed", storable.EventType)
	assert.JSONEq(t, `{"OrderID": "order-1"}`, string(storable.PayloadJSON))
}

func Test_StorableEnvelopeFrom_SelfSerializingEvent(t *testing.T) {
	// arrange
	envelope, err := eventbus.BuildEventEnvelopeWithNewID(
		"order-1", 5, 3, selfSerializingEvent{OrderID: "order-1"}, time.Now(),
	)
	require.NoError(t, err)

	// act
	storable, err := history.StorableEnvelopeFrom(envelope)

	// assert: the event's own serialization wins over generic marshaling
	require.NoError(t, err)
	assert.JSONEq(t, `{"OrderID": "order-1"}`, string(storable.PayloadJSON))
}

func Test_StorableEnvelopeFrom_SerializationFailure(t *testing.T) {
	// arrange
	envelope, err := eventbus.BuildEventEnvelopeWithNewID(
		"order-1", 5, 3, selfSerializingEvent{OrderID: "order-1", fail: true}, time.Now(),
	)
	require.NoError(t, err)

	// act
	_, err = history.StorableEnvelopeFrom(envelope)

	// assert
	assert.ErrorIs(t, err, history.ErrMarshalingPayloadFailed)
}
