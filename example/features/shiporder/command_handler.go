package shiporder

import (
	"context"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/shell"
)

// CommandHandler orchestrates the complete command processing workflow
// for shipping an order: Query -> Decide -> Append -> Publish.
type CommandHandler struct {
	archive   shell.EnvelopeArchive
	publisher shell.EventPublisher
}

// NewCommandHandler creates a new CommandHandler with the provided dependencies.
func NewCommandHandler(archive shell.EnvelopeArchive, publisher shell.EventPublisher) CommandHandler {
	return CommandHandler{
		archive:   archive,
		publisher: publisher,
	}
}

// Handle executes the complete command processing workflow.
func (h CommandHandler) Handle(ctx context.Context, command Command) error {
	aggregateID := command.OrderID.String()

	envelopes, maxSequenceNumber, err := h.archive.QueryByAggregate(ctx, aggregateID)
	if err != nil {
		return err
	}

	history, err := shell.DomainEventsFrom(envelopes)
	if err != nil {
		return err
	}

	newEvents := Decide(history, command)
	if len(newEvents) == 0 {
		return nil // nothing to do
	}

	storables, err := shell.StorableEnvelopesFrom(aggregateID, maxSequenceNumber, newEvents)
	if err != nil {
		return err
	}

	if appendErr := h.archive.Append(ctx, maxSequenceNumber, storables[0], storables[1:]...); appendErr != nil {
		return appendErr
	}

	for _, event := range newEvents {
		if publishErr := h.publisher.Publish(ctx, event, eventbus.AllowUnhandled()); publishErr != nil {
			return publishErr
		}
	}

	return nil
}
