package cancelorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

// CommandTypeName is the discriminator this command is dispatched under.
const CommandTypeName = "CancelOrder"

// Command represents the intent to cancel a placed order.
type Command struct {
	OrderID    uuid.UUID
	Reason     string
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	orderID uuid.UUID,
	reason string,
	occurredAt time.Time,
) Command {

	return Command{
		OrderID:    orderID,
		Reason:     reason,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the discriminator this command is dispatched under.
func (c Command) CommandType() string {
	return CommandTypeName
}

// HasCancellationReason exposes the cancellation reason to authorization rules.
func (c Command) HasCancellationReason() string {
	return c.Reason
}
