package dispatch

import "context"

// Authorizer decides whether a message may be handled. Implementations
// receive the message's type discriminator and the message itself and
// return nil to allow handling or an error describing the denial.
type Authorizer interface {
	Authorize(ctx context.Context, messageType string, message any) error
}

// AuthorizerFunc adapts a plain function to the Authorizer interface.
type AuthorizerFunc func(ctx context.Context, messageType string, message any) error

// Authorize implements the Authorizer interface.
func (f AuthorizerFunc) Authorize(ctx context.Context, messageType string, message any) error {
	return f(ctx, messageType, message)
}

// CommandAuthorization is a command decorator that consults an Authorizer
// before the inner handler runs. On denial the inner handler is never
// invoked and the authorization error is returned as-is.
type CommandAuthorization struct {
	authorizer Authorizer
}

// NewCommandAuthorization creates an authorization decorator for command handlers.
func NewCommandAuthorization(authorizer Authorizer) CommandAuthorization {
	return CommandAuthorization{authorizer: authorizer}
}

// Decorate wraps the inner handler with an authorization check.
func (a CommandAuthorization) Decorate(next CommandHandler) CommandHandler {
	return CommandHandlerFunc(func(ctx context.Context, command Command) error {
		if a.authorizer != nil {
			if err := a.authorizer.Authorize(ctx, command.CommandType(), command); err != nil {
				return err
			}
		}

		return next.Handle(ctx, command)
	})
}

// QueryAuthorization is a query decorator that consults an Authorizer
// before the inner handler runs. On denial the inner handler is never
// invoked and the authorization error is returned as-is.
type QueryAuthorization struct {
	authorizer Authorizer
}

// NewQueryAuthorization creates an authorization decorator for query handlers.
func NewQueryAuthorization(authorizer Authorizer) QueryAuthorization {
	return QueryAuthorization{authorizer: authorizer}
}

// Decorate wraps the inner handler with an authorization check.
func (a QueryAuthorization) Decorate(next QueryHandler) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (any, error) {
		if a.authorizer != nil {
			if err := a.authorizer.Authorize(ctx, query.QueryType(), query); err != nil {
				return nil, err
			}
		}

		return next.Read(ctx, query)
	})
}
