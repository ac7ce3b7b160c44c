package app

import (
	"github.com/dispatchkit/cqrs-dispatch-go/authorize"
	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/cancelorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/orderstatus"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/placeorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/shiporder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/shell"
)

// DefaultOrderLimitCents is the approval limit applied to new orders.
const DefaultOrderLimitCents = int64(500_000)

// App bundles the fully wired dispatch components of the example application.
type App struct {
	CommandBus     *dispatch.CommandBus
	QueryProcessor *dispatch.QueryProcessor
	EventBus       *eventbus.EventBus
	Authorizer     *authorize.Manager
	AuditTrail     *shell.AuditTrail
}

// Option configures optional observability dependencies of the App.
type Option func(*options)

type options struct {
	loggingOptions []dispatch.LoggingOption
}

// WithObservability passes logging, metrics, and tracing collectors through
// to the logging decorator on both the command and the query side.
func WithObservability(loggingOptions ...dispatch.LoggingOption) Option {
	return func(o *options) {
		o.loggingOptions = append(o.loggingOptions, loggingOptions...)
	}
}

// Build wires the complete example application on top of the given archive.
func Build(archive shell.EnvelopeArchive, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	bus, err := eventbus.NewEventBus()
	if err != nil {
		return nil, err
	}

	auditTrail := shell.NewAuditTrail()

	if err = declareEventRouting(bus, auditTrail); err != nil {
		return nil, err
	}

	authorizer := authorize.NewManager()
	if err = registerAuthorizationRules(authorizer); err != nil {
		return nil, err
	}

	registry := dispatch.NewRegistry()
	if err = bindHandlers(registry, archive, bus); err != nil {
		return nil, err
	}

	commandLogging := dispatch.NewCommandLogging(o.loggingOptions...)
	commandAuthorization := dispatch.NewCommandAuthorization(authorizer)

	commandBus, err := dispatch.NewCommandBus(
		registry,
		dispatch.WithCommandDecorators(commandLogging.Decorate, commandAuthorization.Decorate),
	)
	if err != nil {
		return nil, err
	}

	queryLogging := dispatch.NewQueryLogging(o.loggingOptions...)
	queryAuthorization := dispatch.NewQueryAuthorization(authorizer)

	queryProcessor, err := dispatch.NewQueryProcessor(
		registry,
		dispatch.WithQueryDecorators(queryLogging.Decorate, queryAuthorization.Decorate),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		CommandBus:     commandBus,
		QueryProcessor: queryProcessor,
		EventBus:       bus,
		Authorizer:     authorizer,
		AuditTrail:     auditTrail,
	}, nil
}

// declareEventRouting declares the capability families of the order events
// and subscribes the audit trail under the auditable capability.
func declareEventRouting(bus *eventbus.EventBus, auditTrail *shell.AuditTrail) error {
	orderEventTypes := []string{
		core.OrderPlacedEventType,
		core.OrderShippedEventType,
		core.OrderCanceledEventType,
	}

	for _, eventType := range orderEventTypes {
		if err := bus.DeclareCapabilities(eventType,
			core.AuditableCapability,
			core.OrderLifecycleCapability,
		); err != nil {
			return err
		}
	}

	return bus.Bind(core.AuditableCapability, "audit-trail", auditTrail)
}

// registerAuthorizationRules binds the rule sets for every command type.
// Queries get an empty rule set so that executing them stays authorized.
func registerAuthorizationRules(authorizer *authorize.Manager) error {
	if err := authorizer.RegisterRules(placeorder.CommandTypeName,
		shell.AmountIsPositiveRule(),
		shell.AmountWithinLimitRule(DefaultOrderLimitCents),
	); err != nil {
		return err
	}

	if err := authorizer.RegisterRules(cancelorder.CommandTypeName,
		shell.ReasonIsGivenRule(),
	); err != nil {
		return err
	}

	if err := authorizer.RegisterRules(shiporder.CommandTypeName); err != nil {
		return err
	}

	return authorizer.RegisterRules(orderstatus.QueryTypeName)
}

// bindHandlers binds every feature slice handler to the registry.
func bindHandlers(registry *dispatch.Registry, archive shell.EnvelopeArchive, bus *eventbus.EventBus) error {
	placeOrderHandler := placeorder.NewCommandHandler(archive, bus)
	if err := registry.BindCommandHandler(
		placeorder.CommandTypeName,
		dispatch.TypedCommandHandler(placeOrderHandler.Handle),
	); err != nil {
		return err
	}

	cancelOrderHandler := cancelorder.NewCommandHandler(archive, bus)
	if err := registry.BindCommandHandler(
		cancelorder.CommandTypeName,
		dispatch.TypedCommandHandler(cancelOrderHandler.Handle),
	); err != nil {
		return err
	}

	shipOrderHandler := shiporder.NewCommandHandler(archive, bus)
	if err := registry.BindCommandHandler(
		shiporder.CommandTypeName,
		dispatch.TypedCommandHandler(shipOrderHandler.Handle),
	); err != nil {
		return err
	}

	orderStatusHandler := orderstatus.NewQueryHandler(archive)

	return registry.BindQueryHandler(
		orderstatus.QueryTypeName,
		dispatch.TypedQueryHandler(orderStatusHandler.Read),
	)
}
