package eventbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

// EventBus routes published domain events to their subscribed handlers.
// Registration is append-only and safe to call concurrently with publishing.
type EventBus struct {
	subs             *subscriptions
	composites       *compositeCache
	logger           dispatch.Logger
	contextualLogger dispatch.ContextualLogger
}

// EventBusOption defines a functional option for configuring an EventBus.
type EventBusOption func(*EventBus) error

// WithEventBusLogger sets a basic logger used for debug output on publish.
func WithEventBusLogger(logger dispatch.Logger) EventBusOption {
	return func(b *EventBus) error {
		b.logger = logger
		return nil
	}
}

// WithEventBusContextualLogger sets a context-aware logger used for debug
// output on publish. Takes precedence over the basic logger.
func WithEventBusContextualLogger(logger dispatch.ContextualLogger) EventBusOption {
	return func(b *EventBus) error {
		b.contextualLogger = logger
		return nil
	}
}

// NewEventBus creates an empty event bus.
func NewEventBus(options ...EventBusOption) (*EventBus, error) {
	bus := &EventBus{
		subs:       newSubscriptions(),
		composites: newCompositeCache(),
	}

	for _, option := range options {
		if err := option(bus); err != nil {
			return nil, err
		}
	}

	return bus, nil
}

// Bind subscribes a handler to a discriminator, which may be a concrete
// event type or a capability. Handlers bound to the same discriminator are
// invoked in registration order. Binding the same handler name twice for one
// discriminator is a no-op.
func (b *EventBus) Bind(discriminator string, handlerName string, handler EventHandler) error {
	return b.subs.bind(discriminator, handlerName, handler)
}

// DeclareCapabilities declares the capability discriminators of a concrete
// event type. On publish, handlers bound to a declared capability run before
// the concrete-type handler, in declaration order. Re-declaring is a no-op.
func (b *EventBus) DeclareCapabilities(eventType string, capabilities ...string) error {
	return b.subs.declareCapabilities(eventType, capabilities...)
}

// PublishOption defines a per-publish option.
type PublishOption func(*publishConfig)

type publishConfig struct {
	failIfUnhandled bool
}

// AllowUnhandled tolerates a publish that no handler receives, instead of
// failing with ErrNoSubscriber.
func AllowUnhandled() PublishOption {
	return func(c *publishConfig) {
		c.failIfUnhandled = false
	}
}

// Publish delivers the event to every handler bound to one of its declared
// capabilities, then to the handlers bound to its concrete type, so the most
// specific handler always runs last. A handler failure propagates immediately
// and leaves later handlers uninvoked; the caller sees the partial delivery
// and may re-publish.
//
// By default a publish that no handler receives fails with ErrNoSubscriber
// naming the concrete event type; pass AllowUnhandled to tolerate it.
func (b *EventBus) Publish(ctx context.Context, event DomainEvent, options ...PublishOption) error {
	if event == nil {
		return ErrNilEvent
	}

	eventType := event.EventType()
	if eventType == "" {
		return ErrEmptyEventType
	}

	cfg := publishConfig{failIfUnhandled: true}
	for _, option := range options {
		option(&cfg)
	}

	b.logDebug(ctx, "publishing event", "event_type", eventType)

	handledCount := 0

	for _, discriminator := range b.subs.dispatchOrder(eventType) {
		composite, bound := b.composites.resolve(b.subs, discriminator)
		if !bound {
			continue
		}

		handledCount++

		if err := composite.Handle(ctx, event); err != nil {
			return err
		}
	}

	if cfg.failIfUnhandled && handledCount == 0 {
		return errors.Join(ErrNoSubscriber, fmt.Errorf("event type: %s", eventType))
	}

	return nil
}

// PublishAsync offloads the synchronous Publish path to a worker goroutine
// and returns a future that completes with the same outcome or propagates
// the same failure.
func (b *EventBus) PublishAsync(ctx context.Context, event DomainEvent, options ...PublishOption) *dispatch.Future[struct{}] {
	return dispatch.RunFuture(func() (struct{}, error) {
		return struct{}{}, b.Publish(ctx, event, options...)
	})
}

func (b *EventBus) logDebug(ctx context.Context, msg string, args ...any) {
	if b.contextualLogger != nil {
		b.contextualLogger.DebugContext(ctx, msg, args...)
	} else if b.logger != nil {
		b.logger.Debug(msg, args...)
	}
}
