package core

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// OrderPlacedEventType is the event type identifier.
const OrderPlacedEventType = "order.placed"

// OrderPlaced represents when a customer places a new order.
type OrderPlaced struct {
	OrderID     OrderIDString    `json:"orderID"`
	CustomerID  CustomerIDString `json:"customerID"`
	AmountCents int64            `json:"amountCents"`
	OccurredAt  OccurredAtTS     `json:"occurredAt"`
}

// BuildOrderPlaced creates a new OrderPlaced event.
func BuildOrderPlaced(
	orderID uuid.UUID,
	customerID uuid.UUID,
	amountCents int64,
	occurredAt time.Time,
) OrderPlaced {

	event := OrderPlaced{
		OrderID:     orderID.String(),
		CustomerID:  customerID.String(),
		AmountCents: amountCents,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e OrderPlaced) EventType() string {
	return OrderPlacedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrderPlaced) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// PayloadToJSON serializes the event payload.
func (e OrderPlaced) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}
