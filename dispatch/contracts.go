package dispatch

import (
	"context"
	"errors"
	"fmt"
)

// CommandTypeString is an alias type for command type discriminators.
type CommandTypeString = string

// QueryTypeString is an alias type for query type discriminators.
type QueryTypeString = string

// Command represents the contract for all command types routed through the CommandBus.
// Each command encapsulates the intent and parameters of a state-changing operation.
// The CommandType method is the stable discriminator used for handler resolution,
// authorization rule lookup, and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types routed through the QueryProcessor.
// Each query encapsulates the intent and parameters needed to retrieve data.
// The QueryType method is the stable discriminator used for handler resolution,
// authorization rule lookup, and observability instrumentation.
type Query interface {
	QueryType() string
}

// CommandHandler defines the contract for components that process commands.
// Implementations own all side effects of the command; the bus only resolves
// and invokes. Decorators implement this same contract around an inner handler.
type CommandHandler interface {
	Handle(ctx context.Context, command Command) error
}

// CommandHandlerFunc adapts a plain function to the CommandHandler contract.
type CommandHandlerFunc func(ctx context.Context, command Command) error

// Handle invokes the wrapped function.
func (f CommandHandlerFunc) Handle(ctx context.Context, command Command) error {
	return f(ctx, command)
}

// QueryHandler defines the contract for components that process queries and return a result.
// Implementations must not mutate state; a result cache, if desired, is a decorator.
type QueryHandler interface {
	Read(ctx context.Context, query Query) (any, error)
}

// QueryHandlerFunc adapts a plain function to the QueryHandler contract.
type QueryHandlerFunc func(ctx context.Context, query Query) (any, error)

// Read invokes the wrapped function.
func (f QueryHandlerFunc) Read(ctx context.Context, query Query) (any, error) {
	return f(ctx, query)
}

// TypedCommandHandler adapts a handler for one concrete command type to the
// untyped CommandHandler contract used by the Registry.
// The returned handler fails with ErrUnexpectedMessageType if it ever receives
// a command instance of a different concrete type, which indicates a binding
// registered under the wrong discriminator.
func TypedCommandHandler[C Command](handle func(ctx context.Context, command C) error) CommandHandler {
	return CommandHandlerFunc(func(ctx context.Context, command Command) error {
		typed, ok := command.(C)
		if !ok {
			return errors.Join(
				ErrUnexpectedMessageType,
				fmt.Errorf("command type: %s, concrete type: %T", command.CommandType(), command),
			)
		}

		return handle(ctx, typed)
	})
}

// TypedQueryHandler adapts a handler for one concrete query type to the
// untyped QueryHandler contract used by the Registry.
// The returned handler fails with ErrUnexpectedMessageType if it ever receives
// a query instance of a different concrete type.
func TypedQueryHandler[Q Query, R any](read func(ctx context.Context, query Q) (R, error)) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (any, error) {
		typed, ok := query.(Q)
		if !ok {
			return nil, errors.Join(
				ErrUnexpectedMessageType,
				fmt.Errorf("query type: %s, concrete type: %T", query.QueryType(), query),
			)
		}

		return read(ctx, typed)
	})
}
