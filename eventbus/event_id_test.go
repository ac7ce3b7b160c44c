package eventbus_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
)

func Test_EventID_StrictlyIncreasingInTightLoop(t *testing.T) {
	// arrange
	const count = 1000
	ids := make([]eventbus.EventID, count)

	// act
	for i := range ids {
		ids[i] = eventbus.NewEventID()
	}

	// assert: strictly increasing even when many land in the same millisecond
	for i := 1; i < count; i++ {
		assert.True(
			t,
			ids[i-1].Less(ids[i]),
			"id %d (%s) should be less than id %d (%s)",
			i-1, ids[i-1], i, ids[i],
		)
	}
}

func Test_EventID_UniqueUnderConcurrentGeneration(t *testing.T) {
	// arrange
	const workers = 8
	const perWorker = 250

	var mu sync.Mutex
	seen := make(map[eventbus.EventID]struct{}, workers*perWorker)

	var wg sync.WaitGroup

	// act
	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			local := make([]eventbus.EventID, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, eventbus.NewEventID())
			}

			mu.Lock()
			for _, id := range local {
				seen[id] = struct{}{}
			}
			mu.Unlock()
		}()
	}

	wg.Wait()

	// assert
	assert.Len(t, seen, workers*perWorker)
}

func Test_EventID_StringRoundTrip(t *testing.T) {
	// arrange
	id := eventbus.NewEventID()

	// act
	parsed, err := eventbus.EventIDFromString(id.String())

	// assert
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
	assert.Zero(t, id.Compare(parsed))
}

func Test_EventID_FromInvalidString(t *testing.T) {
	// act
	_, err := eventbus.EventIDFromString("not-a-uuid")

	// assert
	assert.ErrorIs(t, err, eventbus.ErrInvalidEventID)
}

func Test_EventID_CompareIsSymmetric(t *testing.T) {
	// arrange
	first := eventbus.NewEventID()
	second := eventbus.NewEventID()

	// assert
	assert.Equal(t, -1, first.Compare(second))
	assert.Equal(t, 1, second.Compare(first))
	assert.Zero(t, first.Compare(first))
	assert.False(t, first.IsZero())
	assert.True(t, eventbus.EventID{}.IsZero())
}
