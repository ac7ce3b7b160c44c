package dispatch

import "context"

// CommandBus resolves and invokes the decorated handler for a command instance.
// The bus itself is side-effect-free beyond resolution and invocation; all side
// effects belong to the handler. The decorator chain configured at construction
// time is applied around every resolved handler.
type CommandBus struct {
	resolver   CommandHandlerResolver
	decorators []CommandDecorator
}

// CommandBusOption defines a functional option for configuring a CommandBus.
type CommandBusOption func(*CommandBus) error

// WithCommandDecorators sets the decorator chain applied around every resolved
// command handler. The first decorator in the list is the outermost layer, so a
// typical order is authorization first, then logging, then the base handler.
func WithCommandDecorators(decorators ...CommandDecorator) CommandBusOption {
	return func(b *CommandBus) error {
		b.decorators = decorators
		return nil
	}
}

// NewCommandBus creates a CommandBus resolving handlers through the given resolver.
func NewCommandBus(resolver CommandHandlerResolver, options ...CommandBusOption) (*CommandBus, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}

	bus := &CommandBus{resolver: resolver}

	for _, option := range options {
		if err := option(bus); err != nil {
			return nil, err
		}
	}

	return bus, nil
}

// Send resolves exactly one handler bound to the command's type, applies the
// decorator chain, and invokes it. Fails with ErrUnresolvedHandler if no
// binding exists and with ErrNilMessage if the command is nil.
func (b *CommandBus) Send(ctx context.Context, command Command) error {
	if command == nil {
		return ErrNilMessage
	}

	handler, resolveErr := b.resolver.ResolveRequiredCommandHandler(command.CommandType())
	if resolveErr != nil {
		return resolveErr
	}

	return ComposeCommandHandler(handler, b.decorators...).Handle(ctx, command)
}

// SendAsync offloads the synchronous Send path to a worker goroutine and
// returns a future that completes with the same outcome or propagates the
// same failure.
func (b *CommandBus) SendAsync(ctx context.Context, command Command) *Future[struct{}] {
	return RunFuture(func() (struct{}, error) {
		return struct{}{}, b.Send(ctx, command)
	})
}
