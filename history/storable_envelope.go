package history

import (
	"encoding/json"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")
var ErrEmptyEventID = errors.New("event id must not be empty")
var ErrEmptyAggregateID = errors.New("aggregate id must not be empty")
var ErrEmptyEventType = errors.New("event type must not be empty")
var ErrMarshalingPayloadFailed = errors.New("marshaling event payload to json failed")

// StorableEnvelopes is an alias type for a slice of StorableEnvelope
type StorableEnvelopes = []StorableEnvelope

// StorableEnvelope is a DTO (data transfer object) used by archive
// implementations to append captured envelopes and query them back.
//
// It is built on scalars to be completely agnostic of the implementation of
// Domain Events in the client code.
//
// While its properties are exported, it should only be constructed with the
// supplied factory methods:
//   - BuildStorableEnvelope
//   - StorableEnvelopeFrom
type StorableEnvelope struct {
	EventID          string
	AggregateID      string
	Sequence         uint64
	AggregateVersion uint64
	EventType        string
	PayloadJSON      []byte
	CreatedAt        time.Time
}

// BuildStorableEnvelope is a factory method for StorableEnvelope.
//
// It populates the StorableEnvelope with the given scalar input.
// Returns an error if payloadJSON is not valid JSON or a required scalar is empty.
func BuildStorableEnvelope(
	eventID string,
	aggregateID string,
	sequence uint64,
	aggregateVersion uint64,
	eventType string,
	payloadJSON []byte,
	createdAt time.Time,
) (StorableEnvelope, error) {
	if eventID == "" {
		return StorableEnvelope{}, ErrEmptyEventID
	}

	if aggregateID == "" {
		return StorableEnvelope{}, ErrEmptyAggregateID
	}

	if eventType == "" {
		return StorableEnvelope{}, ErrEmptyEventType
	}

	if !json.Valid(payloadJSON) {
		return StorableEnvelope{}, ErrInvalidPayloadJSON
	}

	return StorableEnvelope{
		EventID:          eventID,
		AggregateID:      aggregateID,
		Sequence:         sequence,
		AggregateVersion: aggregateVersion,
		EventType:        eventType,
		PayloadJSON:      payloadJSON,
		CreatedAt:        createdAt,
	}, nil
}

// StorableEnvelopeFrom is a factory method for StorableEnvelope that reduces a
// captured eventbus.EventEnvelope to scalars.
//
// Events implementing eventbus.JSONPayloader serialize themselves; all other
// events are marshaled as-is.
func StorableEnvelopeFrom(envelope eventbus.EventEnvelope) (StorableEnvelope, error) {
	payloadJSON, err := payloadFromEvent(envelope.Event)
	if err != nil {
		return StorableEnvelope{}, err
	}

	return BuildStorableEnvelope(
		envelope.EventID.String(),
		envelope.AggregateID,
		envelope.Sequence,
		envelope.AggregateVersion,
		envelope.EventTypeName,
		payloadJSON,
		envelope.CreatedAt,
	)
}

func payloadFromEvent(event eventbus.DomainEvent) ([]byte, error) {
	if event == nil {
		return nil, eventbus.ErrNilEvent
	}

	if payloader, ok := event.(eventbus.JSONPayloader); ok {
		payloadJSON, err := payloader.PayloadToJSON()
		if err != nil {
			return nil, errors.Join(ErrMarshalingPayloadFailed, err)
		}

		return payloadJSON, nil
	}

	payloadJSON, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return nil, errors.Join(ErrMarshalingPayloadFailed, err)
	}

	return payloadJSON, nil
}
