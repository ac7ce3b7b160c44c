// Package history provides the storage-facing types for archiving captured
// domain event envelopes.
//
// This package defines the scalar DTO used across archive implementations,
// consistency preferences for read routing, and common error definitions.
// Envelopes are archived per aggregate: each aggregate id owns a stream of
// envelopes with a monotonic sequence, and appends are guarded against
// concurrent writers through the expected maximum sequence number.
//
// Key types:
//   - StorableEnvelope: a captured envelope reduced to scalars for storage
//   - StorableEnvelopes: collection of storable envelopes
//   - ConsistencyLevel: read routing preference carried through context
//
// Common usage pattern:
//
//	envelope, err := eventbus.BuildEventEnvelopeWithNewID(orderID, seq, version, event, time.Now())
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
package history
