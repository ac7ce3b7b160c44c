package core

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// OrderCanceledEventType is the event type identifier.
const OrderCanceledEventType = "order.canceled"

// OrderCanceled represents when a placed order is canceled before shipping.
type OrderCanceled struct {
	OrderID    OrderIDString `json:"orderID"`
	Reason     string        `json:"reason"`
	OccurredAt OccurredAtTS  `json:"occurredAt"`
}

// BuildOrderCanceled creates a new OrderCanceled event.
func BuildOrderCanceled(
	orderID uuid.UUID,
	reason string,
	occurredAt time.Time,
) OrderCanceled {

	event := OrderCanceled{
		OrderID:    orderID.String(),
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e OrderCanceled) EventType() string {
	return OrderCanceledEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrderCanceled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// PayloadToJSON serializes the event payload.
func (e OrderCanceled) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}
