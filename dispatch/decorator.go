package dispatch

// CommandDecorator wraps a command handler with cross-cutting behavior while
// preserving the handler contract. A decorator holds exactly one inner handler
// and must invoke it exactly once on the success path.
type CommandDecorator func(next CommandHandler) CommandHandler

// QueryDecorator wraps a query handler with cross-cutting behavior while
// preserving the handler contract.
type QueryDecorator func(next QueryHandler) QueryHandler

// ComposeCommandHandler builds a single handler from a decorator list and a base handler.
// Decorators are applied in reverse order so the first decorator in the list is the
// outermost layer, i.e. ComposeCommandHandler(h, auth, logging) runs
// authorization, then logging, then the base handler.
func ComposeCommandHandler(base CommandHandler, decorators ...CommandDecorator) CommandHandler {
	handler := base

	for i := len(decorators) - 1; i >= 0; i-- {
		handler = decorators[i](handler)
	}

	return handler
}

// ComposeQueryHandler builds a single handler from a decorator list and a base handler.
// Decorators are applied in reverse order so the first decorator in the list is the
// outermost layer.
func ComposeQueryHandler(base QueryHandler, decorators ...QueryDecorator) QueryHandler {
	handler := base

	for i := len(decorators) - 1; i >= 0; i-- {
		handler = decorators[i](handler)
	}

	return handler
}
