package orderstatus

import (
	"github.com/google/uuid"
)

// QueryTypeName is the discriminator this query is dispatched under.
const QueryTypeName = "OrderStatus"

// Query represents the intent to read the current status of one order.
type Query struct {
	OrderID uuid.UUID
}

// BuildQuery creates a new Query for the given order.
func BuildQuery(orderID uuid.UUID) Query {
	return Query{OrderID: orderID}
}

// QueryType returns the discriminator this query is dispatched under.
func (q Query) QueryType() string {
	return QueryTypeName
}
