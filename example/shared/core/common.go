package core

import (
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// OrderIDString represents an order identifier
type OrderIDString = string

// CustomerIDString represents a customer identifier
type CustomerIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a business event that has occurred in the domain.
// The method set matches what the event bus and the envelope archive expect,
// so core events can be published and archived without any adapter code.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// PayloadToJSON serializes the event payload.
	PayloadToJSON() ([]byte, error)
}
