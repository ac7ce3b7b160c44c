// Package dispatch provides the core routing surface of the CQRS toolkit:
// the command bus, the query processor, and the decorator chain that wraps
// their handlers with cross-cutting behavior.
//
// Commands and queries are routed by their type discriminator string
// (CommandType / QueryType) to exactly one handler resolved from a Registry.
// Decorators implement the same handler contract as the handler they wrap,
// so cross-cutting behavior (authorization, logging) composes without the
// base handler knowing about it.
//
// Key types:
//   - Registry: binds message types to handlers with a lifetime policy
//   - CommandBus: Send / SendAsync for commands (no return value)
//   - QueryProcessor: Execute / ExecuteAsync for queries (typed result)
//   - CommandDecorator / QueryDecorator: handler wrappers, composed bottom-up
//
// Common usage pattern:
//
//	registry := dispatch.NewRegistry()
//	_ = registry.BindCommandHandler(PlaceOrderCommandType, placeOrderHandler)
//
//	bus, _ := dispatch.NewCommandBus(
//		registry,
//		dispatch.WithCommandDecorators(
//			dispatch.NewCommandAuthorization(authorizer).Decorate,
//			dispatch.NewCommandLogging(dispatch.WithLoggingLogger(logger)).Decorate,
//		),
//	)
//
//	err := bus.Send(ctx, PlaceOrder{OrderID: orderID})
package dispatch
