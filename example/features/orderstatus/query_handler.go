package orderstatus

import (
	"context"

	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/core"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/shell"
	"github.com/dispatchkit/cqrs-dispatch-go/history"
)

// QueryHandler projects an order's current status from its archived history.
// Reads tolerate replication lag, so the archive query is executed with
// eventual consistency and may be served by a replica.
type QueryHandler struct {
	archive shell.EnvelopeArchive
}

// NewQueryHandler creates a new QueryHandler with the provided archive dependency.
func NewQueryHandler(archive shell.EnvelopeArchive) QueryHandler {
	return QueryHandler{archive: archive}
}

// Read executes the query workflow: Query -> Unmarshal -> Project.
func (h QueryHandler) Read(ctx context.Context, query Query) (Result, error) {
	ctx = history.WithEventualConsistency(ctx)

	envelopes, _, err := h.archive.QueryByAggregate(ctx, query.OrderID.String())
	if err != nil {
		return Result{}, err
	}

	events, err := shell.DomainEventsFrom(envelopes)
	if err != nil {
		return Result{}, err
	}

	return project(events, query.OrderID.String()), nil
}

// project builds the current status by replaying all events from the history.
func project(events core.DomainEvents, orderID string) Result {
	result := Result{
		OrderID: orderID,
		Status:  StatusUnknown,
	}

	for _, event := range events {
		switch e := event.(type) {
		case core.OrderPlaced:
			if e.OrderID == orderID {
				result.Status = StatusPlaced
				result.AmountCents = e.AmountCents
				result.PlacedAt = e.OccurredAt
			}

		case core.OrderShipped:
			if e.OrderID == orderID {
				result.Status = StatusShipped
				result.TrackingID = e.TrackingID
			}

		case core.OrderCanceled:
			if e.OrderID == orderID {
				result.Status = StatusCanceled
				result.CancelReason = e.Reason
			}
		}
	}

	return result
}
