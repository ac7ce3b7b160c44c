// Package postgresengine provides a PostgreSQL-backed archive for captured
// domain event envelopes.
//
// Each aggregate id owns one append-only stream of envelopes with a monotonic
// sequence number. Appends are guarded against concurrent writers: the insert
// only succeeds when the stream's current maximum sequence number still
// matches the expected one the caller observed before deciding, implemented
// with a conditional insert in a single statement. A lost race surfaces as
// history.ErrSequenceConflict.
//
// Three factory methods cover the supported database libraries:
//   - NewArchiveFromPGXPool for pgxpool.Pool (with optional read replica)
//   - NewArchiveFromSQLDB for database/sql
//   - NewArchiveFromSQLX for sqlx.DB
//
// Common usage pattern:
//
//	archive, err := postgresengine.NewArchiveFromPGXPool(pool)
//	if err != nil {
//		// handle error
//	}
//
//	envelopes, maxSeq, err := archive.QueryByAggregate(ctx, orderID)
//	if err != nil {
//		// handle error
//	}
//
//	storable, err := history.StorableEnvelopeFrom(envelope)
//	if err != nil {
//		// handle error
//	}
//
//	err = archive.Append(ctx, maxSeq, storable)
package postgresengine
