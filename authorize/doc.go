// Package authorize implements rule-based authorization for command and
// query dispatch.
//
// A Manager holds an append-only registry of rule sets keyed by message
// type. When asked to authorize a message it evaluates every rule of the
// matching set, never short-circuiting, so a caller learns about all
// denials at once:
//
//   - no failing rule: the message is allowed
//   - exactly one failing rule: an *AuthorizationError with that rule's reason
//   - two or more failing rules: an *AggregateAuthorizationError carrying
//     every reason in rule registration order
//
// Asking for a message type with no registered rule set is a configuration
// mistake and fails with ErrNoRuleSetConfigured rather than allowing or
// denying silently.
//
// Manager implements dispatch.Authorizer, so it plugs directly into the
// dispatch decorators:
//
//	manager := authorize.NewManager()
//	err := manager.RegisterRules("commands.place_order",
//		placeOrderQuantityRule{},
//		placeOrderCreditRule{},
//	)
//	if err != nil { ... }
//
//	bus, err := dispatch.NewCommandBus(registry,
//		dispatch.WithCommandDecorators(
//			dispatch.NewCommandAuthorization(manager).Decorate,
//		),
//	)
package authorize
