package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

func Test_CommandAuthorization_AllowsAndInvokesHandler(t *testing.T) {
	// arrange
	var authorizedType string
	authorizer := dispatch.AuthorizerFunc(
		func(_ context.Context, messageType string, _ any) error {
			authorizedType = messageType
			return nil
		},
	)

	invoked := false
	handler := dispatch.NewCommandAuthorization(authorizer).Decorate(
		dispatch.CommandHandlerFunc(func(context.Context, dispatch.Command) error {
			invoked = true
			return nil
		}),
	)

	// act
	err := handler.Handle(context.Background(), placeOrderCommand{})

	// assert
	require.NoError(t, err)
	assert.True(t, invoked)
	assert.Equal(t, placeOrderCommandType, authorizedType)
}

func Test_CommandAuthorization_DenialPreventsHandler(t *testing.T) {
	// arrange
	denied := errors.New("denied")
	authorizer := dispatch.AuthorizerFunc(
		func(context.Context, string, any) error {
			return denied
		},
	)

	invoked := false
	handler := dispatch.NewCommandAuthorization(authorizer).Decorate(
		dispatch.CommandHandlerFunc(func(context.Context, dispatch.Command) error {
			invoked = true
			return nil
		}),
	)

	// act
	err := handler.Handle(context.Background(), placeOrderCommand{})

	// assert: the denial escapes unchanged, the base handler never runs
	assert.Equal(t, denied, err)
	assert.False(t, invoked)
}

func Test_QueryAuthorization_DenialPreventsHandler(t *testing.T) {
	// arrange
	denied := errors.New("denied")
	authorizer := dispatch.AuthorizerFunc(
		func(context.Context, string, any) error {
			return denied
		},
	)

	invoked := false
	handler := dispatch.NewQueryAuthorization(authorizer).Decorate(
		dispatch.QueryHandlerFunc(func(context.Context, dispatch.Query) (any, error) {
			invoked = true
			return nil, nil
		}),
	)

	// act
	result, err := handler.Read(context.Background(), orderStatusQuery{})

	// assert
	assert.Nil(t, result)
	assert.Equal(t, denied, err)
	assert.False(t, invoked)
}

func Test_QueryAuthorization_AllowsAndReturnsResult(t *testing.T) {
	// arrange
	authorizer := dispatch.AuthorizerFunc(
		func(context.Context, string, any) error {
			return nil
		},
	)

	handler := dispatch.NewQueryAuthorization(authorizer).Decorate(
		dispatch.QueryHandlerFunc(func(context.Context, dispatch.Query) (any, error) {
			return orderStatusResult{Status: "shipped"}, nil
		}),
	)

	// act
	result, err := handler.Read(context.Background(), orderStatusQuery{})

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderStatusResult{Status: "shipped"}, result)
}
