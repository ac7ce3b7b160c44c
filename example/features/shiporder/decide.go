package shiporder

import (
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

// state represents the current state projected from the event history.
type state struct {
	orderWasPlaced   bool
	orderWasShipped  bool
	orderWasCanceled bool
}

// Decide implements the business logic to determine whether an order should be shipped.
//
// Business Rules:
//   GIVEN: An order with OrderID
//   WHEN: ShipOrder command is received
//   THEN: OrderShipped event is generated if the order was placed and not canceled
//   IDEMPOTENCY: If the order was already shipped or never placed, no event is generated (no-op)
//   GUARD: A canceled order can not be shipped (no-op)
func Decide(history core.DomainEvents, command Command) core.DomainEvents {
	s := project(history, command.OrderID.String())

	if !s.orderWasPlaced || s.orderWasShipped || s.orderWasCanceled {
		return core.DomainEvents{}
	}

	return core.DomainEvents{
		core.BuildOrderShipped(
			command.OrderID,
			command.TrackingID,
			command.OccurredAt,
		),
	}
}

// project builds the current state by replaying all events from the history.
func project(history core.DomainEvents, orderID string) state {
	s := state{}

	for _, event := range history {
		switch e := event.(type) {
		case core.OrderPlaced:
			if e.OrderID == orderID {
				s.orderWasPlaced = true
			}

		case core.OrderShipped:
			if e.OrderID == orderID {
				s.orderWasShipped = true
			}

		case core.OrderCanceled:
			if e.OrderID == orderID {
				s.orderWasCanceled = true
			}
		}
	}

	return s
}
