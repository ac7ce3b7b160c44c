package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
	"github.com/dispatchkit/cqrs-dispatch-go/history"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

// DomainEventsFrom converts multiple StorableEnvelopes to DomainEvents.
func DomainEventsFrom(envelopes history.StorableEnvelopes) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(envelopes))

	for _, envelope := range envelopes {
		domainEvent, err := DomainEventFrom(envelope)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEnvelope to its corresponding DomainEvent.
func DomainEventFrom(envelope history.StorableEnvelope) (core.DomainEvent, error) {
	switch envelope.EventType {
	case core.OrderPlacedEventType:
		return unmarshalOrderPlaced(envelope.PayloadJSON)

	case core.OrderCanceledEventType:
		return unmarshalOrderCanceled(envelope.PayloadJSON)

	case core.OrderShippedEventType:
		return unmarshalOrderShipped(envelope.PayloadJSON)

	default:
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}
}

func unmarshalOrderPlaced(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.OrderPlaced)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload)
	if err != nil {
		return core.OrderPlaced{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalOrderCanceled(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.OrderCanceled)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload)
	if err != nil {
		return core.OrderCanceled{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}

func unmarshalOrderShipped(payloadJSON []byte) (core.DomainEvent, error) {
	payload := new(core.OrderShipped)

	err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &payload)
	if err != nil {
		return core.OrderShipped{}, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *payload, nil
}
