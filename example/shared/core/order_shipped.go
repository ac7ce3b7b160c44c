package core

import (
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// OrderShippedEventType is the event type identifier.
const OrderShippedEventType = "order.shipped"

// OrderShipped represents when a placed order leaves the warehouse.
// A shipped order can no longer be canceled.
type OrderShipped struct {
	OrderID    OrderIDString `json:"orderID"`
	TrackingID string        `json:"trackingID"`
	OccurredAt OccurredAtTS  `json:"occurredAt"`
}

// BuildOrderShipped creates a new OrderShipped event.
func BuildOrderShipped(
	orderID uuid.UUID,
	trackingID string,
	occurredAt time.Time,
) OrderShipped {

	event := OrderShipped{
		OrderID:    orderID.String(),
		TrackingID: trackingID,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e OrderShipped) EventType() string {
	return OrderShippedEventType
}

// HasOccurredAt returns when this event occurred.
func (e OrderShipped) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// PayloadToJSON serializes the event payload.
func (e OrderShipped) PayloadToJSON() ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(e)
}
