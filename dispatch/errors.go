package dispatch

import "errors"

var (
	// ErrUnresolvedHandler is returned when no handler is bound for a command or query type.
	ErrUnresolvedHandler = errors.New("no handler bound for message type")

	// ErrNilMessage is returned when a nil message reaches the dispatch boundary.
	ErrNilMessage = errors.New("message must not be nil at the dispatch boundary")

	// ErrNilHandler is returned when a nil handler or handler factory is bound.
	ErrNilHandler = errors.New("handler must not be nil")

	// ErrEmptyMessageType is returned when a binding is registered with an empty type discriminator.
	ErrEmptyMessageType = errors.New("message type must not be empty")

	// ErrDuplicateHandlerBinding is returned when a second handler is bound for a
	// command or query type which already has one. Commands and queries route to
	// exactly one handler; only domain events support multiple bindings.
	ErrDuplicateHandlerBinding = errors.New("a handler is already bound for this message type")

	// ErrUnexpectedMessageType is returned by typed handler adapters when the
	// concrete message type does not match the bound handler's type.
	ErrUnexpectedMessageType = errors.New("handler received an unexpected concrete message type")

	// ErrUnexpectedResultType is returned by ExecuteAs when the handler's result
	// cannot be asserted to the requested type.
	ErrUnexpectedResultType = errors.New("query result has an unexpected type")

	// ErrNilResolver is returned when a bus or processor is constructed without a resolver.
	ErrNilResolver = errors.New("resolver must not be nil")
)
