package dispatch

import (
	"errors"
	"fmt"
	"sync"
)

// CommandHandlerResolver is the resolution capability consumed by the CommandBus.
type CommandHandlerResolver interface {
	// ResolveCommandHandler returns the handler bound to the command type, or nil if unbound.
	ResolveCommandHandler(commandType string) CommandHandler

	// ResolveRequiredCommandHandler returns the handler bound to the command type
	// and fails with ErrUnresolvedHandler if no binding exists.
	ResolveRequiredCommandHandler(commandType string) (CommandHandler, error)
}

// QueryHandlerResolver is the resolution capability consumed by the QueryProcessor.
type QueryHandlerResolver interface {
	// ResolveQueryHandler returns the handler bound to the query type, or nil if unbound.
	ResolveQueryHandler(queryType string) QueryHandler

	// ResolveRequiredQueryHandler returns the handler bound to the query type
	// and fails with ErrUnresolvedHandler if no binding exists.
	ResolveRequiredQueryHandler(queryType string) (QueryHandler, error)
}

// Registry maps command and query type discriminators to their single handler binding.
// Each binding carries a lifetime policy: a singleton instance is reused for every
// dispatch, while a factory binding produces a fresh handler per call.
//
// Registration is additive only. Bindings are never removed within a process
// lifetime, and registration is safe to call concurrently with resolution.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]commandBinding
	queries  map[string]queryBinding
}

type commandBinding struct {
	instance CommandHandler
	factory  func() CommandHandler
}

type queryBinding struct {
	instance QueryHandler
	factory  func() QueryHandler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]commandBinding),
		queries:  make(map[string]queryBinding),
	}
}

// BindCommandHandler binds a singleton handler instance to a command type.
// Fails with ErrDuplicateHandlerBinding if the type is already bound.
func (r *Registry) BindCommandHandler(commandType string, handler CommandHandler) error {
	if handler == nil {
		return ErrNilHandler
	}

	return r.bindCommand(commandType, commandBinding{instance: handler})
}

// BindCommandHandlerFactory binds a per-call handler factory to a command type.
// The factory is invoked once per Send, so handler instances never outlive a dispatch.
// Fails with ErrDuplicateHandlerBinding if the type is already bound.
func (r *Registry) BindCommandHandlerFactory(commandType string, factory func() CommandHandler) error {
	if factory == nil {
		return ErrNilHandler
	}

	return r.bindCommand(commandType, commandBinding{factory: factory})
}

// BindQueryHandler binds a singleton handler instance to a query type.
// Fails with ErrDuplicateHandlerBinding if the type is already bound.
func (r *Registry) BindQueryHandler(queryType string, handler QueryHandler) error {
	if handler == nil {
		return ErrNilHandler
	}

	return r.bindQuery(queryType, queryBinding{instance: handler})
}

// BindQueryHandlerFactory binds a per-call handler factory to a query type.
// Fails with ErrDuplicateHandlerBinding if the type is already bound.
func (r *Registry) BindQueryHandlerFactory(queryType string, factory func() QueryHandler) error {
	if factory == nil {
		return ErrNilHandler
	}

	return r.bindQuery(queryType, queryBinding{factory: factory})
}

func (r *Registry) bindCommand(commandType string, binding commandBinding) error {
	if commandType == "" {
		return ErrEmptyMessageType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[commandType]; exists {
		return errors.Join(ErrDuplicateHandlerBinding, fmt.Errorf("command type: %s", commandType))
	}

	r.commands[commandType] = binding

	return nil
}

func (r *Registry) bindQuery(queryType string, binding queryBinding) error {
	if queryType == "" {
		return ErrEmptyMessageType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.queries[queryType]; exists {
		return errors.Join(ErrDuplicateHandlerBinding, fmt.Errorf("query type: %s", queryType))
	}

	r.queries[queryType] = binding

	return nil
}

// ResolveCommandHandler returns the handler bound to the command type, or nil if unbound.
func (r *Registry) ResolveCommandHandler(commandType string) CommandHandler {
	r.mu.RLock()
	binding, exists := r.commands[commandType]
	r.mu.RUnlock()

	if !exists {
		return nil
	}

	if binding.factory != nil {
		return binding.factory()
	}

	return binding.instance
}

// ResolveRequiredCommandHandler returns the handler bound to the command type
// and fails with ErrUnresolvedHandler if no binding exists.
func (r *Registry) ResolveRequiredCommandHandler(commandType string) (CommandHandler, error) {
	handler := r.ResolveCommandHandler(commandType)
	if handler == nil {
		return nil, errors.Join(ErrUnresolvedHandler, fmt.Errorf("command type: %s", commandType))
	}

	return handler, nil
}

// ResolveQueryHandler returns the handler bound to the query type, or nil if unbound.
func (r *Registry) ResolveQueryHandler(queryType string) QueryHandler {
	r.mu.RLock()
	binding, exists := r.queries[queryType]
	r.mu.RUnlock()

	if !exists {
		return nil
	}

	if binding.factory != nil {
		return binding.factory()
	}

	return binding.instance
}

// ResolveRequiredQueryHandler returns the handler bound to the query type
// and fails with ErrUnresolvedHandler if no binding exists.
func (r *Registry) ResolveRequiredQueryHandler(queryType string) (QueryHandler, error) {
	handler := r.ResolveQueryHandler(queryType)
	if handler == nil {
		return nil, errors.Join(ErrUnresolvedHandler, fmt.Errorf("query type: %s", queryType))
	}

	return handler, nil
}

// Ensure Registry implements both resolver capabilities.
var _ CommandHandlerResolver = (*Registry)(nil)
var _ QueryHandlerResolver = (*Registry)(nil)
