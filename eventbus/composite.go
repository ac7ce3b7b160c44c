package eventbus

import (
	"context"
	"sync"
)

// compositeHandler merges all handlers bound to one discriminator into a
// single handler that invokes each constituent in registration order. A
// failing constituent propagates immediately and prevents later constituents
// in the same composite from running.
type compositeHandler struct {
	handlers []EventHandler
}

func (c compositeHandler) Handle(ctx context.Context, event DomainEvent) error {
	for _, handler := range c.handlers {
		if err := handler.Handle(ctx, event); err != nil {
			return err
		}
	}

	return nil
}

type compositeEntry struct {
	generation uint64
	handler    compositeHandler
	bound      bool
}

// compositeCache lazily builds and caches the composite handler per
// discriminator. Entries grow monotonically with the subscription table and
// are rebuilt when the table's generation has advanced past the cached one.
type compositeCache struct {
	mu      sync.RWMutex
	entries map[string]compositeEntry
}

func newCompositeCache() *compositeCache {
	return &compositeCache{
		entries: make(map[string]compositeEntry),
	}
}

// resolve returns the composite handler for a discriminator and whether any
// handler is bound to it.
func (c *compositeCache) resolve(subs *subscriptions, discriminator string) (compositeHandler, bool) {
	currentGeneration := subs.currentGeneration()

	c.mu.RLock()
	entry, cached := c.entries[discriminator]
	c.mu.RUnlock()

	if cached && entry.generation == currentGeneration {
		return entry.handler, entry.bound
	}

	handlers, readGeneration := subs.handlersFor(discriminator)

	entry = compositeEntry{
		generation: readGeneration,
		handler:    compositeHandler{handlers: handlers},
		bound:      len(handlers) > 0,
	}

	c.mu.Lock()
	// Another goroutine may have cached a newer snapshot in the meantime;
	// keep whichever generation is higher.
	if existing, ok := c.entries[discriminator]; !ok || existing.generation <= entry.generation {
		c.entries[discriminator] = entry
	}
	c.mu.Unlock()

	return entry.handler, entry.bound
}
