package eventbus

import (
	"errors"
	"fmt"
	"sync"
)

// binding pairs a handler with the name it was registered under.
// Names make repeated registration of the same wiring idempotent.
type binding struct {
	name    string
	handler EventHandler
}

// subscriptions is the append-only registration table of the bus: handler
// bindings per type discriminator and declared capabilities per concrete
// event type. Entries are never removed, so concurrent readers never observe
// a shrinking view. The generation counter advances on every effective
// mutation and lets the composite cache detect staleness.
type subscriptions struct {
	mu           sync.RWMutex
	generation   uint64
	bindings     map[string][]binding
	capabilities map[string][]string
}

func newSubscriptions() *subscriptions {
	return &subscriptions{
		bindings:     make(map[string][]binding),
		capabilities: make(map[string][]string),
	}
}

// bind appends a handler to the given discriminator's binding list.
// A binding whose name is already present for that discriminator is skipped.
func (s *subscriptions) bind(discriminator string, handlerName string, handler EventHandler) error {
	if discriminator == "" {
		return ErrEmptyEventType
	}

	if handlerName == "" {
		return errors.Join(ErrEmptyHandlerName, fmt.Errorf("event type: %s", discriminator))
	}

	if handler == nil {
		return errors.Join(ErrNilHandler, fmt.Errorf("event type: %s, handler: %s", discriminator, handlerName))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.bindings[discriminator]
	for _, bound := range existing {
		if bound.name == handlerName {
			return nil
		}
	}

	extended := make([]binding, len(existing), len(existing)+1)
	copy(extended, existing)
	extended = append(extended, binding{name: handlerName, handler: handler})

	s.bindings[discriminator] = extended
	s.generation++

	return nil
}

// declareCapabilities appends capability discriminators for a concrete event
// type. Order of first declaration is preserved; re-declaring a capability is
// a no-op.
func (s *subscriptions) declareCapabilities(eventType string, capabilities ...string) error {
	if eventType == "" {
		return ErrEmptyEventType
	}

	for _, capability := range capabilities {
		if capability == "" {
			return errors.Join(ErrEmptyCapability, fmt.Errorf("event type: %s", eventType))
		}

		if capability == eventType {
			return errors.Join(ErrDuplicateCapability, fmt.Errorf("event type: %s", eventType))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.capabilities[eventType]
	known := make(map[string]struct{}, len(existing))
	for _, capability := range existing {
		known[capability] = struct{}{}
	}

	extended := make([]string, len(existing), len(existing)+len(capabilities))
	copy(extended, existing)

	changed := false

	for _, capability := range capabilities {
		if _, declared := known[capability]; declared {
			continue
		}

		known[capability] = struct{}{}
		extended = append(extended, capability)
		changed = true
	}

	if changed {
		s.capabilities[eventType] = extended
		s.generation++
	}

	return nil
}

// dispatchOrder returns the discriminators to resolve for a concrete event
// type: its declared capabilities in declaration order, then the concrete
// type itself last. The order is stable across publishes for a fixed set of
// registrations.
func (s *subscriptions) dispatchOrder(eventType string) []string {
	s.mu.RLock()
	declared := s.capabilities[eventType]
	s.mu.RUnlock()

	order := make([]string, 0, len(declared)+1)
	order = append(order, declared...)
	order = append(order, eventType)

	return order
}

// handlersFor returns the handlers bound to a discriminator, in registration
// order, together with the table generation they were read at.
func (s *subscriptions) handlersFor(discriminator string) ([]EventHandler, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bound := s.bindings[discriminator]
	if len(bound) == 0 {
		return nil, s.generation
	}

	handlers := make([]EventHandler, 0, len(bound))
	for _, b := range bound {
		handlers = append(handlers, b.handler)
	}

	return handlers, s.generation
}

func (s *subscriptions) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.generation
}
