package shell

import (
	"context"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
	"github.com/dispatchkit/cqrs-dispatch-go/history"
)

// EnvelopeArchive defines the interface needed by command and query handlers
// for archive operations. This abstraction is shared across the feature slices
// so that the Postgres archive and in-memory test doubles are interchangeable.
type EnvelopeArchive interface {
	QueryByAggregate(ctx context.Context, aggregateID string) (
		history.StorableEnvelopes,
		history.MaxSequenceNumberUint,
		error,
	)
	Append(
		ctx context.Context,
		expectedMaxSequenceNumber history.MaxSequenceNumberUint,
		envelope history.StorableEnvelope,
		additionalEnvelopes ...history.StorableEnvelope,
	) error
}

// EventPublisher defines the interface needed by command handlers to announce
// captured domain events to subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.DomainEvent, options ...eventbus.PublishOption) error
}
