package dispatch

import (
	"context"
	"errors"
	"fmt"
)

// QueryProcessor resolves and invokes the decorated handler for a query instance
// and returns its result. Resolution and decoration follow the same discipline
// as the CommandBus; the processor itself never caches results (a cache, if
// desired, is a decorator).
type QueryProcessor struct {
	resolver   QueryHandlerResolver
	decorators []QueryDecorator
}

// QueryProcessorOption defines a functional option for configuring a QueryProcessor.
type QueryProcessorOption func(*QueryProcessor) error

// WithQueryDecorators sets the decorator chain applied around every resolved
// query handler. The first decorator in the list is the outermost layer.
func WithQueryDecorators(decorators ...QueryDecorator) QueryProcessorOption {
	return func(p *QueryProcessor) error {
		p.decorators = decorators
		return nil
	}
}

// NewQueryProcessor creates a QueryProcessor resolving handlers through the given resolver.
func NewQueryProcessor(resolver QueryHandlerResolver, options ...QueryProcessorOption) (*QueryProcessor, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}

	processor := &QueryProcessor{resolver: resolver}

	for _, option := range options {
		if err := option(processor); err != nil {
			return nil, err
		}
	}

	return processor, nil
}

// Execute resolves exactly one handler bound to the query's type, applies the
// decorator chain, invokes it, and returns the result. Fails with
// ErrUnresolvedHandler if no binding exists and with ErrNilMessage if the
// query is nil.
func (p *QueryProcessor) Execute(ctx context.Context, query Query) (any, error) {
	if query == nil {
		return nil, ErrNilMessage
	}

	handler, resolveErr := p.resolver.ResolveRequiredQueryHandler(query.QueryType())
	if resolveErr != nil {
		return nil, resolveErr
	}

	return ComposeQueryHandler(handler, p.decorators...).Read(ctx, query)
}

// ExecuteAsync offloads the synchronous Execute path to a worker goroutine and
// returns a future that completes with the same outcome or propagates the
// same failure.
func (p *QueryProcessor) ExecuteAsync(ctx context.Context, query Query) *Future[any] {
	return RunFuture(func() (any, error) {
		return p.Execute(ctx, query)
	})
}

// ExecuteAs executes a query and asserts the result to the requested type R.
// Fails with ErrUnexpectedResultType if the handler returned something else,
// which indicates a binding registered under the wrong discriminator.
func ExecuteAs[R any](ctx context.Context, processor *QueryProcessor, query Query) (R, error) {
	var zero R

	result, err := processor.Execute(ctx, query)
	if err != nil {
		return zero, err
	}

	typed, ok := result.(R)
	if !ok {
		return zero, errors.Join(
			ErrUnexpectedResultType,
			fmt.Errorf("query type: %s, result type: %T", query.QueryType(), result),
		)
	}

	return typed, nil
}
