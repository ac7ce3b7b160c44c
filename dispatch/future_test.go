package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

func Test_Future_Wait_ReturnsResult(t *testing.T) {
	// arrange
	future := dispatch.RunFuture(func() (int, error) {
		return 42, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// act
	result, err := future.Wait(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func Test_Future_Wait_ReturnsError(t *testing.T) {
	// arrange
	workerErr := errors.New("worker failed")
	future := dispatch.RunFuture(func() (int, error) {
		return 0, workerErr
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// act
	_, err := future.Wait(ctx)

	// assert
	assert.Equal(t, workerErr, err)
}

func Test_Future_Wait_ContextCancellationAbandonsWaiting(t *testing.T) {
	// arrange: the worker outlives the waiter's patience
	release := make(chan struct{})
	future := dispatch.RunFuture(func() (int, error) {
		<-release
		return 42, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := future.Wait(ctx)

	// assert: waiting stops, the work itself keeps running
	assert.ErrorIs(t, err, context.Canceled)

	close(release)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()

	result, err := future.Wait(waitCtx)
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func Test_Future_Done_ClosesOnCompletion(t *testing.T) {
	// arrange
	future := dispatch.RunFuture(func() (struct{}, error) {
		return struct{}{}, nil
	})

	// act + assert
	select {
	case <-future.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not complete in time")
	}
}
