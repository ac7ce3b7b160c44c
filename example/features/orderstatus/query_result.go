package orderstatus

import (
	"time"
)

// Status values an order can be in.
const (
	StatusUnknown  = "unknown"
	StatusPlaced   = "placed"
	StatusShipped  = "shipped"
	StatusCanceled = "canceled"
)

// Result is the projection of one order's current status.
type Result struct {
	OrderID      string
	Status       string
	AmountCents  int64
	TrackingID   string
	CancelReason string
	PlacedAt     time.Time
}
