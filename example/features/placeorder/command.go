package placeorder

import (
	"time"

	"github.com/google/uuid"

	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

// CommandTypeName is the discriminator this command is dispatched under.
const CommandTypeName = "PlaceOrder"

// Command represents the intent to place a new order.
// It encapsulates all the necessary information required to execute the place order use case.
type Command struct {
	OrderID     uuid.UUID
	CustomerID  uuid.UUID
	AmountCents int64
	OccurredAt  core.OccurredAtTS
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	orderID uuid.UUID,
	customerID uuid.UUID,
	amountCents int64,
	occurredAt time.Time,
) Command {

	return Command{
		OrderID:     orderID,
		CustomerID:  customerID,
		AmountCents: amountCents,
		OccurredAt:  core.ToOccurredAt(occurredAt),
	}
}

// CommandType returns the discriminator this command is dispatched under.
func (c Command) CommandType() string {
	return CommandTypeName
}

// HasAmountCents exposes the order amount to authorization rules.
func (c Command) HasAmountCents() int64 {
	return c.AmountCents
}
