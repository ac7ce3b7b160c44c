package placeorder_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/example/features/placeorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

func Test_Decide_PlacesNewOrder(t *testing.T) {
	// arrange
	orderID := uuid.New()
	customerID := uuid.New()
	command := placeorder.BuildCommand(orderID, customerID, 4999, time.Now())

	// act
	newEvents := placeorder.Decide(core.DomainEvents{}, command)

	// assert
	require.Len(t, newEvents, 1)
	placed, ok := newEvents[0].(core.OrderPlaced)
	require.True(t, ok)
	assert.Equal(t, orderID.String(), placed.OrderID)
	assert.Equal(t, customerID.String(), placed.CustomerID)
	assert.Equal(t, int64(4999), placed.AmountCents)
}

func Test_Decide_IsIdempotentForPlacedOrder(t *testing.T) {
	// arrange
	orderID := uuid.New()
	history := core.DomainEvents{
		core.BuildOrderPlaced(orderID, uuid.New(), 100, time.Now()),
	}
	command := placeorder.BuildCommand(orderID, uuid.New(), 100, time.Now())

	// act
	newEvents := placeorder.Decide(history, command)

	// assert
	assert.Empty(t, newEvents)
}
