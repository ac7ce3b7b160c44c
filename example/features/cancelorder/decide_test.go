package cancelorder_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/example/features/cancelorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
)

func Test_Decide_CancelsPlacedOrder(t *testing.T) {
	// arrange
	orderID := uuid.New()
	history := core.DomainEvents{
		core.BuildOrderPlaced(orderID, uuid.New(), 100, time.Now()),
	}
	command := cancelorder.BuildCommand(orderID, "changed my mind", time.Now())

	// act
	newEvents := cancelorder.Decide(history, command)

	// assert
	require.Len(t, newEvents, 1)
	canceled, ok := newEvents[0].(core.OrderCanceled)
	require.True(t, ok)
	assert.Equal(t, orderID.String(), canceled.OrderID)
	assert.Equal(t, "changed my mind", canceled.Reason)
}

func Test_Decide_NoOpCases(t *testing.T) {
	orderID := uuid.New()
	placed := core.BuildOrderPlaced(orderID, uuid.New(), 100, time.Now())

	testCases := []struct {
		name    string
		history core.DomainEvents
	}{
		{
			name:    "order was never placed",
			history: core.DomainEvents{},
		},
		{
			name: "order was already canceled",
			history: core.DomainEvents{
				placed,
				core.BuildOrderCanceled(orderID, "first cancellation", time.Now()),
			},
		},
		{
			name: "order was already shipped",
			history: core.DomainEvents{
				placed,
				core.BuildOrderShipped(orderID, "track-1", time.Now()),
			},
		},
		{
			name: "history belongs to a different order",
			history: core.DomainEvents{
				core.BuildOrderPlaced(uuid.New(), uuid.New(), 100, time.Now()),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			command := cancelorder.BuildCommand(orderID, "some reason", time.Now())

			newEvents := cancelorder.Decide(tc.history, command)

			assert.Empty(t, newEvents)
		})
	}
}
