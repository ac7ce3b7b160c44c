package cancelorder

import (
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

// state represents the current state projected from the event history.
type state struct {
	orderWasPlaced   bool
	orderWasShipped  bool
	orderWasCanceled bool
}

// Decide implements the business logic to determine whether an order should be canceled.
// This is a pure function with no side effects - it takes the current domain events and a command
// and returns the events that should be appended based on the business rules.
//
// Business Rules:
//   GIVEN: An order with OrderID
//   WHEN: CancelOrder command is received
//   THEN: OrderCanceled event is generated if the order was placed and not yet shipped
//   IDEMPOTENCY: If the order was already canceled or never placed, no event is generated (no-op)
//   GUARD: A shipped order can not be canceled anymore (no-op)
func Decide(history core.DomainEvents, command Command) core.DomainEvents {
	s := project(history, command.OrderID.String())

	if !s.orderWasPlaced || s.orderWasCanceled || s.orderWasShipped {
		return core.DomainEvents{}
	}

	return core.DomainEvents{
		core.BuildOrderCanceled(
			command.OrderID,
			command.Reason,
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
