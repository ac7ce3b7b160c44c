package shiporder

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

// CommandTypeName is the discriminator this command is dispatched under.
const CommandTypeName = "ShipOrder"

// Command represents the intent to ship a placed order.
type Command struct {
	OrderID    uuid.UUID
	TrackingID string
	OccurredAt core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	orderID uuid.UUID,
	trackingID string,
	occurredAt time.Time,
) Command {

	return Command{
		OrderID:    orderID,
		TrackingID: trackingID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the discriminator this command is dispatched under.
func (c Command) CommandType() string {
	return CommandTypeName
}
