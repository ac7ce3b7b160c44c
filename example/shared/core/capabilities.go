package core

// Capability discriminators shared by order events. Capabilities are
// declared on the event bus so that subscribers can handle whole families
// of events without binding to every concrete event type.
const (
	// OrderLifecycleCapability groups all events that change an order's lifecycle state.
	OrderLifecycleCapability = "order.lifecycle"

	// AuditableCapability marks events that must be recorded in the audit trail.
	AuditableCapability = "shared.auditable"
)
