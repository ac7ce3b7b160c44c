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

const orderStatusQueryType = "queries.order_status"

type orderStatusQuery struct {
	OrderID string
}

func (q orderStatusQuery) QueryType() string {
	return orderStatusQueryType
}

type orderStatusResult struct {
	OrderID string
	Status  string
}

func givenOrderStatusProcessor(t *testing.T) *dispatch.QueryProcessor {
	t.Helper()

	registry := dispatch.NewRegistry()
	err := registry.BindQueryHandler(orderStatusQueryType,
		dispatch.TypedQueryHandler(func(_ context.Context, query orderStatusQuery) (orderStatusResult, error) {
			return orderStatusResult{OrderID: query.OrderID, Status: "shipped"}, nil
		}),
	)
	require.NoError(t, err)

	processor, err := dispatch.NewQueryProcessor(registry)
	require.NoError(t, err)

	return processor
}

func Test_QueryProcessor_Execute_ReturnsHandlerResult(t *testing.T) {
	// arrange
	processor := givenOrderStatusProcessor(t)

	// act
	result, err := processor.Execute(context.Background(), orderStatusQuery{OrderID: "o-1"})

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderStatusResult{OrderID: "o-1", Status: "shipped"}, result)
}

func Test_QueryProcessor_ExecuteAs_TypedResult(t *testing.T) {
	// arrange
	processor := givenOrderStatusProcessor(t)

	// act
	result, err := dispatch.ExecuteAs[orderStatusResult](
		context.Background(), processor, orderStatusQuery{OrderID: "o-1"},
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "shipped", result.Status)
}

func Test_QueryProcessor_ExecuteAs_UnexpectedResultType(t *testing.T) {
	// arrange
	processor := givenOrderStatusProcessor(t)

	// act
	_, err := dispatch.ExecuteAs[string](
		context.Background(), processor, orderStatusQuery{OrderID: "o-1"},
	)

	// assert
	require.Error(t, err)
	assert.ErrorIs(t, err, dispatch.ErrUnexpectedResultType)
	assert.Contains(t, err.Error(), orderStatusQueryType)
}

func Test_QueryProcessor_Execute_UnresolvedHandler(t *testing.T) {
	// arrange
	processor, err := dispatch.NewQueryProcessor(dispatch.NewRegistry())
	require.NoError(t, err)

	// act
	_, err = processor.Execute(context.Background(), orderStatusQuery{})

	// assert
	assert.ErrorIs(t, err, dispatch.ErrUnresolvedHandler)
}

func Test_QueryProcessor_Execute_NilQuery(t *testing.T) {
	processor, err := dispatch.NewQueryProcessor(dispatch.NewRegistry())
	require.NoError(t, err)

	_, err = processor.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, dispatch.ErrNilMessage)
}

func Test_QueryProcessor_Execute_HandlerFailurePropagatesUnchanged(t *testing.T) {
	// arrange
	registry := dispatch.NewRegistry()

	handlerErr := errors.New("read model unavailable")
	err := registry.BindQueryHandler(orderStatusQueryType,
		dispatch.QueryHandlerFunc(func(context.Context, dispatch.Query) (any, error) {
			return nil, handlerErr
		}),
	)
	require.NoError(t, err)

	processor, err := dispatch.NewQueryProcessor(registry)
	require.NoError(t, err)

	// act
	_, err = processor.Execute(context.Background(), orderStatusQuery{})

	// assert
	assert.Equal(t, handlerErr, err)
}

func Test_QueryProcessor_Execute_DecoratorsApplyOutermostFirst(t *testing.T) {
	// arrange
	registry := dispatch.NewRegistry()

	var order []string
	err := registry.BindQueryHandler(orderStatusQueryType,
		dispatch.QueryHandlerFunc(func(context.Context, dispatch.Query) (any, error) {
			order = append(order, "handler")
			return orderStatusResult{}, nil
		}),
	)
	require.NoError(t, err)

	namedDecorator := func(name string) dispatch.QueryDecorator {
		return func(next dispatch.QueryHandler) dispatch.QueryHandler {
			return dispatch.QueryHandlerFunc(func(ctx context.Context, query dispatch.Query) (any, error) {
				order = append(order, name)
				return next.Read(ctx, query)
			})
		}
	}

	processor, err := dispatch.NewQueryProcessor(registry,
		dispatch.WithQueryDecorators(namedDecorator("outer"), namedDecorator("inner")),
	)
	require.NoError(t, err)

	// act
	_, err = processor.Execute(context.Background(), orderStatusQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func Test_QueryProcessor_ExecuteAsync_SurfacesOutcome(t *testing.T) {
	// arrange
	processor := givenOrderStatusProcessor(t)

	// act
	future := processor.ExecuteAsync(context.Background(), orderStatusQuery{OrderID: "o-1"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	result, err := future.Wait(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderStatusResult{OrderID: "o-1", Status: "shipped"}, result)
}

func Test_NewQueryProcessor_NilResolver(t *testing.T) {
	_, err := dispatch.NewQueryProcessor(nil)

	assert.ErrorIs(t, err, dispatch.ErrNilResolver)
}
