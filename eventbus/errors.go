package eventbus

import "errors"

// ErrNoSubscriber indicates that an event was published with no handler bound
// to its concrete type or any of its declared capabilities.
var ErrNoSubscriber = errors.New("no subscriber for event")

// ErrNilEvent indicates that a nil event was published.
var ErrNilEvent = errors.New("event must not be nil")

// ErrNilHandler indicates that a nil handler was bound.
var ErrNilHandler = errors.New("event handler must not be nil")

// ErrEmptyEventType indicates an empty event type discriminator.
var ErrEmptyEventType = errors.New("event type must not be empty")

// ErrEmptyHandlerName indicates an empty handler name in a binding.
var ErrEmptyHandlerName = errors.New("handler name must not be empty")

// ErrEmptyCapability indicates an empty capability discriminator.
var ErrEmptyCapability = errors.New("capability must not be empty")

// ErrDuplicateCapability indicates that a capability equals the concrete event
// type it is declared for.
var ErrDuplicateCapability = errors.New("capability must differ from the event type")
