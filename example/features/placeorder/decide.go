package placeorder

import (
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

// state represents the current state projected from the event history.
type state struct {
	orderWasPlaced bool
}

// Decide implements the business logic to determine whether an order should be placed.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//   GIVEN: An order with OrderID
//   WHEN: PlaceOrder command is received
//   THEN: OrderPlaced event is generated
//   ERROR: None (always succeeds)
//   IDEMPOTENCY: If the order was already placed, no event is generated (no-op)
func Decide(history core.DomainEvents, command Command) core.DomainEvents {
	s := project(history, command.OrderID.String())

	if s.orderWasPlaced {
		return core.DomainEvents{} // idempotency - the order was already placed, so no new event
	}

	return core.DomainEvents{
		core.BuildOrderPlaced(
			command.OrderID,
			command.CustomerID,
			command.AmountCents,
			command.OccurredAt,
		),
	}
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, orderID string) state {
	s := state{
		orderWasPlaced: false,
	}

	for _, event := range history {
		if e, ok := event.(core.OrderPlaced); ok && e.OrderID == orderID {
			s.orderWasPlaced = true
		}
	}

	return s
}
