package history

import "errors"

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrEmptyEnvelopesTableName = errors.New("empty envelopesTableName supplied")
var ErrSequenceConflict = errors.New("sequence conflict, no rows were affected")
var ErrBuildingQueryFailed = errors.New("building query failed")
var ErrQueryingEnvelopesFailed = errors.New("querying envelopes failed")
var ErrAppendingEnvelopeFailed = errors.New("appending envelope failed")
var ErrScanningDBRowFailed = errors.New("scanning database row failed")
var ErrBuildingStorableEnvelopeFailed = errors.New("building storable envelope from database row failed")
var ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
var ErrMixedAggregateEnvelopes = errors.New("all envelopes of one append must share the same aggregate id")

// MaxSequenceNumberUint is a type alias for uint64, representing the maximum
// sequence number of one aggregate's envelope stream.
type MaxSequenceNumberUint = uint64
