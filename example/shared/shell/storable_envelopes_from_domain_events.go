package shell

import (
	"errors"
	"time"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
	"github.com/dispatchkit/cqrs-dispatch-go/history"
)

// ErrMappingToStorableEnvelopeFailed is returned when capturing a domain event
// into an archivable envelope fails.
var ErrMappingToStorableEnvelopeFailed = errors.New("mapping to storable envelope failed")

// StorableEnvelopesFrom captures freshly decided domain events into archivable
// envelopes for one aggregate. Sequence numbers continue from the given
// baseSequence, which is the max sequence number observed when the aggregate's
// history was queried.
func StorableEnvelopesFrom(
	aggregateID string,
	baseSequence history.MaxSequenceNumberUint,
	events core.DomainEvents,
) (history.StorableEnvelopes, error) {

	storables := make(history.StorableEnvelopes, 0, len(events))

	for idx, event := range events {
		sequence := baseSequence + uint64(idx) + 1

		envelope, err := eventbus.BuildEventEnvelopeWithNewID(
			aggregateID,
			sequence,
			sequence,
			event,
			time.Now(),
		)
		if err != nil {
			return nil, errors.Join(ErrMappingToStorableEnvelopeFailed, err)
		}

		storable, err := history.StorableEnvelopeFrom(envelope)
		if err != nil {
			return nil, errors.Join(ErrMappingToStorableEnvelopeFailed, err)
		}

		storables = append(storables, storable)
	}

	return storables, nil
}
