package shell

import (
	"context"
	"sync"
	"time"

	"github.com/dispatchkit/cqrs-dispatch-go/eventbus"
)

// AuditRecord is one entry in the audit trail.
type AuditRecord struct {
	EventType  string
	RecordedAt time.Time
}

// AuditTrail records every event carrying the auditable capability.
// It is bound to the event bus under the capability discriminator, so it
// receives events before the concrete per-type subscribers do.
type AuditTrail struct {
	mu      sync.Mutex
	records []AuditRecord
}

// NewAuditTrail creates an empty audit trail.
func NewAuditTrail() *AuditTrail {
	return &AuditTrail{}
}

// Handle implements eventbus.EventHandler by appending an audit record.
func (a *AuditTrail) Handle(_ context.Context, event eventbus.DomainEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.records = append(a.records, AuditRecord{
		EventType:  event.EventType(),
		RecordedAt: time.Now().UTC(),
	})

	return nil
}

// Records returns a copy of all audit records in recording order.
func (a *AuditTrail) Records() []AuditRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	records := make([]AuditRecord, len(a.records))
	copy(records, a.records)

	return records
}

// Ensure AuditTrail implements eventbus.EventHandler.
var _ eventbus.EventHandler = (*AuditTrail)(nil)
