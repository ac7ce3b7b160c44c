// Command demo runs the example order application against a local Postgres
// database: it places, ships, and queries one order end to end.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
	"github.com/dispatchkit/cqrs-dispatch-go/dispatch/oteladapters"
	"github.com/dispatchkit/cqrs-dispatch-go/example/app"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/orderstatus"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/placeorder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/features/shiporder"
	"github.com/dispatchkit/cqrs-dispatch-go/example/shared/shell/config"
	"github.com/dispatchkit/cqrs-dispatch-go/history/postgresengine"
)

func main() {
	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolSingleConfig())
	if err != nil {
		log.Fatal("Failed to create the connection pool, error: ", err)
	}
	defer pool.Close()

	archive, err := postgresengine.NewArchiveFromPGXPool(pool)
	if err != nil {
		log.Fatal("Failed to create the envelope archive, error: ", err)
	}

	contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)

	application, err := app.Build(
		archive,
		app.WithObservability(dispatch.WithLoggingContextualLogger(contextualLogger)),
	)
	if err != nil {
		log.Fatal("Failed to wire the application, error: ", err)
	}

	orderID := uuid.New()
	customerID := uuid.New()

	if err = application.CommandBus.Send(ctx, placeorder.BuildCommand(orderID, customerID, 4999, time.Now())); err != nil {
		log.Fatal("Failed to place the order, error: ", err)
	}

	if err = application.CommandBus.Send(ctx, shiporder.BuildCommand(orderID, "track-42", time.Now())); err != nil {
		log.Fatal("Failed to ship the order, error: ", err)
	}

	result, err := dispatch.ExecuteAs[orderstatus.Result](ctx, application.QueryProcessor, orderstatus.BuildQuery(orderID))
	if err != nil {
		log.Fatal("Failed to query the order status, error: ", err)
	}

	slog.Info("order processed",
		"orderID", result.OrderID,
		"status", result.Status,
		"amountCents", result.AmountCents,
		"trackingID", result.TrackingID,
	)

	for _, record := range application.AuditTrail.Records() {
		slog.Info("audit record", "eventType", record.EventType, "recordedAt", record.RecordedAt)
	}
}
