package eventbus

import "context"

// EventTypeString is an alias type for event type discriminators.
type EventTypeString = string

// DomainEvent is the contract for events published through the bus.
// The event type string is the event's identity for subscription lookup;
// two events with the same type string are routed identically.
type DomainEvent interface {
	EventType() string
}

// JSONPayloader is optionally implemented by domain events that control
// their own payload serialization when captured into an envelope.
type JSONPayloader interface {
	PayloadToJSON() ([]byte, error)
}

// EventHandler is the contract for event subscribers.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event DomainEvent) error

// Handle implements the EventHandler interface.
func (f EventHandlerFunc) Handle(ctx context.Context, event DomainEvent) error {
	return f(ctx, event)
}
