package eventbus

import (
	"errors"
	"time"
)

// ErrZeroEventID indicates that an envelope was built with a zero event identifier.
var ErrZeroEventID = errors.New("event id must not be zero")

// ErrEmptyAggregateID indicates that an envelope was built with an empty aggregate id.
var ErrEmptyAggregateID = errors.New("aggregate id must not be empty")

// EventEnvelopes is an alias type for a slice of EventEnvelope.
type EventEnvelopes = []EventEnvelope

// EventEnvelope is the immutable metadata wrapper produced when a domain
// event is captured for later append to a history: identity, per-aggregate
// sequence, aggregate version after the event, the event itself, and the
// capture timestamp in UTC.
//
// While its properties are exported, it should only be constructed with the
// supplied factory methods:
//   - BuildEventEnvelope
//   - BuildEventEnvelopeWithNewID
type EventEnvelope struct {
	EventID          EventID
	AggregateID      string
	Sequence         uint64
	AggregateVersion uint64
	Event            DomainEvent
	EventTypeName    string
	CreatedAt        time.Time
}

// BuildEventEnvelope is a factory method for EventEnvelope with an explicit
// event identifier, used when rehydrating an envelope from storage.
//
// The creation timestamp is normalized to UTC. Returns an error if the event
// is nil, its type discriminator is empty, the identifier is zero, or the
// aggregate id is empty.
func BuildEventEnvelope(
	eventID EventID,
	aggregateID string,
	sequence uint64,
	aggregateVersion uint64,
	event DomainEvent,
	createdAt time.Time,
) (EventEnvelope, error) {
	if event == nil {
		return EventEnvelope{}, ErrNilEvent
	}

	if event.EventType() == "" {
		return EventEnvelope{}, ErrEmptyEventType
	}

	if eventID.IsZero() {
		return EventEnvelope{}, ErrZeroEventID
	}

	if aggregateID == "" {
		return EventEnvelope{}, ErrEmptyAggregateID
	}

	return EventEnvelope{
		EventID:          eventID,
		AggregateID:      aggregateID,
		Sequence:         sequence,
		AggregateVersion: aggregateVersion,
		Event:            event,
		EventTypeName:    event.EventType(),
		CreatedAt:        createdAt.UTC(),
	}, nil
}

// BuildEventEnvelopeWithNewID is a factory method for EventEnvelope that
// generates a new time-ordered event identifier itself, used when an event
// is captured for the first time.
func BuildEventEnvelopeWithNewID(
	aggregateID string,
	sequence uint64,
	aggregateVersion uint64,
	event DomainEvent,
	createdAt time.Time,
) (EventEnvelope, error) {
	return BuildEventEnvelope(NewEventID(), aggregateID, sequence, aggregateVersion, event, createdAt)
}
