// Package eventbus implements in-process publishing of domain events to
// subscribed handlers, plus the envelope and identifier types used when
// captured events are handed to a history.
//
// Handlers are bound to type discriminator strings, never to runtime
// reflection. A concrete event type may additionally declare capability
// discriminators (the interfaces it implements, in spirit); handlers bound
// to a capability observe every event that declares it. On publish,
// capability-bound handlers run before the concrete-type handler, so the
// most specific handler always runs last. Multiple handlers bound to the
// same discriminator form a composite invoked in registration order, with
// a failure stopping later siblings.
//
// Usage:
//
//	bus := eventbus.NewEventBus()
//
//	err := bus.DeclareCapabilities(core.OrderPlacedEventType, core.OrderLifecycleCapability)
//	if err != nil { ... }
//
//	err = bus.Bind(core.OrderLifecycleCapability, "audit-log", auditHandler)
//	if err != nil { ... }
//
//	err = bus.Bind(core.OrderPlacedEventType, "confirmation-mail", mailHandler)
//	if err != nil { ... }
//
//	err = bus.Publish(ctx, orderPlaced)
//
// Publish fails with ErrNoSubscriber when nothing handled the event; pass
// AllowUnhandled to tolerate that. PublishAsync offloads the same path to a
// worker goroutine and surfaces the outcome through a dispatch.Future.
package eventbus
