package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/dispatchkit/cqrs-dispatch-go/history"
	"github.com/dispatchkit/cqrs-dispatch-go/history/postgresengine/internal/adapters"
)

const (
	defaultEnvelopesTableName         = "event_envelopes"
	logMsgBuildSelectQueryFailed      = "failed to build select query"
	logMsgDBQueryFailed               = "database query execution failed"
	logMsgCloseRowsFailed             = "failed to close database rows"
	logMsgScanRowFailed               = "failed to scan database row"
	logMsgBuildStorableEnvelopeFailed = "failed to build storable envelope from database row"
	logMsgBuildInsertQueryFailed      = "failed to build insert query"
	logMsgDBExecFailed                = "database execution failed during envelope append"
	logMsgRowsAffectedFailed          = "failed to get rows affected count"
	logMsgSingleEnvelopeSQLFailed     = "failed to convert single envelope insert statement to SQL"
	logMsgMultiEnvelopeSQLFailed      = "failed to convert multiple envelopes insert statement to SQL"
	logMsgQueryCompleted              = "query completed"
	logMsgEnvelopesAppended           = "envelopes appended"
	logMsgSequenceConflict            = "sequence conflict detected"
	logMsgSQLExecuted                 = "executed sql for: "
	logMsgOperation                   = "archive operation: "
	logAttrError                      = "error"
	logAttrQuery                      = "query"
	logAttrAggregateID                = "aggregate_id"
	logAttrEventType                  = "event_type"
	logAttrEnvelopeCount              = "envelope_count"
	logAttrDurationMS                 = "duration_ms"
	logAttrExpectedEnvelopes          = "expected_envelopes"
	logAttrRowsAffected               = "rows_affected"
	logAttrExpectedSequence           = "expected_sequence"
	logActionQuery                    = "query"
	logActionAppend                   = "append"
	colEventID                        = "event_id"
	colAggregateID                    = "aggregate_id"
	colSequenceNumber                 = "sequence_number"
	colAggregateVersion               = "aggregate_version"
	colEventType                      = "event_type"
	colPayload                        = "payload"
	colCreatedAt                      = "created_at"
	cteContext                        = "context"
	cteVals                           = "vals"
	dialectPostgres                   = "postgres"
	aliasMaxSeq                       = "max_seq"
	castText                          = "?::text"
	castBigint                        = "?::bigint"
	castTimestamp                     = "?::timestamp with time zone"
	castJsonb                         = "?::jsonb"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
	queryDuration     = time.Duration
)

// Logger interface for SQL query logging, operational metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Archive stores captured domain event envelopes per aggregate stream.
// It leverages a database adapter and supports customizable logging and
// envelope table configuration.
type Archive struct {
	db                 adapters.DBAdapter
	envelopesTableName string
	logger             Logger
}

// Option defines a functional option for configuring an Archive.
type Option func(*Archive) error

// WithTableName sets the table name for the Archive.
func WithTableName(tableName string) Option {
	return func(a *Archive) error {
		if tableName == "" {
			return history.ErrEmptyEnvelopesTableName
		}

		a.envelopesTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Archive.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Envelope counts, durations, sequence conflicts (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(a *Archive) error {
		a.logger = logger
		return nil
	}
}

type queryResultRow struct {
	eventID          string
	aggregateID      string
	sequence         uint64
	aggregateVersion uint64
	eventType        string
	payload          []byte
	createdAt        time.Time
}

// NewArchiveFromPGXPool creates a new Archive using a pgx Pool with optional configuration.
func NewArchiveFromPGXPool(db *pgxpool.Pool, options ...Option) (Archive, error) {
	if db == nil {
		return Archive{}, history.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewPGXAdapter(db), options...)
}

// NewArchiveFromPGXPoolWithReplica creates a new Archive using a primary pgx
// Pool and a read replica. Reads are routed to the replica when the caller
// signals eventual consistency through the context.
func NewArchiveFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Archive, error) {
	if db == nil || replica == nil {
		return Archive{}, history.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewArchiveFromSQLDB creates a new Archive using a sql.DB with optional configuration.
func NewArchiveFromSQLDB(db *sql.DB, options ...Option) (Archive, error) {
	if db == nil {
		return Archive{}, history.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewSQLAdapter(db), options...)
}

// NewArchiveFromSQLX creates a new Archive using a sqlx.DB with optional configuration.
func NewArchiveFromSQLX(db *sqlx.DB, options ...Option) (Archive, error) {
	if db == nil {
		return Archive{}, history.ErrNilDatabaseConnection
	}

	return newArchive(adapters.NewSQLXAdapter(db), options...)
}

func newArchive(db adapters.DBAdapter, options ...Option) (Archive, error) {
	archive := Archive{
		db:                 db,
		envelopesTableName: defaultEnvelopesTableName,
	}

	for _, option := range options {
		if err := option(&archive); err != nil {
			return Archive{}, err
		}
	}

	return archive, nil
}

// QueryByAggregate retrieves all envelopes of one aggregate's stream ordered
// by sequence number, together with the stream's maximum sequence number at
// the time of the query.
func (a Archive) QueryByAggregate(ctx context.Context, aggregateID string) (
	history.StorableEnvelopes,
	history.MaxSequenceNumberUint,
	error,
) {

	var empty history.StorableEnvelopes

	if aggregateID == "" {
		return empty, 0, history.ErrEmptyAggregateID
	}

	sqlQuery, buildQueryErr := a.buildSelectQuery(aggregateID)
	if buildQueryErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgBuildSelectQueryFailed, logAttrError, buildQueryErr.Error())
		}
		return empty, 0, buildQueryErr
	}

	rows, duration, queryErr := a.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return empty, 0, queryErr
	}
	defer a.closeRows(rows)

	envelopes, maxSequenceNumber, scanErr := a.processQueryResults(rows)
	if scanErr != nil {
		return empty, 0, scanErr
	}

	a.logOperation(
		logMsgQueryCompleted,
		logAttrAggregateID, aggregateID,
		logAttrEnvelopeCount, len(envelopes),
		logAttrDurationMS, a.durationToMilliseconds(duration))

	return envelopes, maxSequenceNumber, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (a Archive) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := a.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	a.logQueryWithDuration(sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, duration, errors.Join(history.ErrQueryingEnvelopesFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (a Archive) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if a.logger != nil {
			a.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// processQueryResults processes database rows and converts them to storable envelopes.
func (a Archive) processQueryResults(rows adapters.DBRows) (
	history.StorableEnvelopes,
	history.MaxSequenceNumberUint,
	error,
) {

	var empty history.StorableEnvelopes
	result := queryResultRow{}
	envelopes := make(history.StorableEnvelopes, 0)
	maxSequenceNumber := history.MaxSequenceNumberUint(0)

	for rows.Next() {
		rowScanErr := rows.Scan(
			&result.eventID,
			&result.aggregateID,
			&result.sequence,
			&result.aggregateVersion,
			&result.eventType,
			&result.payload,
			&result.createdAt,
		)
		if rowScanErr != nil {
			if a.logger != nil {
				a.logger.Error(logMsgScanRowFailed, logAttrError, rowScanErr.Error())
			}

			return empty, 0, errors.Join(history.ErrScanningDBRowFailed, rowScanErr)
		}

		envelope, buildStorableErr := history.BuildStorableEnvelope(
			result.eventID,
			result.aggregateID,
			result.sequence,
			result.aggregateVersion,
			result.eventType,
			result.payload,
			result.createdAt,
		)
		if buildStorableErr != nil {
			if a.logger != nil {
				a.logger.Error(logMsgBuildStorableEnvelopeFailed, logAttrError, buildStorableErr.Error(), logAttrEventType, result.eventType)
			}

			return empty, 0, errors.Join(history.ErrBuildingStorableEnvelopeFailed, buildStorableErr)
		}

		envelopes = append(envelopes, envelope)
		maxSequenceNumber = result.sequence
	}

	return envelopes, maxSequenceNumber, nil
}

// Append attempts to append one or multiple history.StorableEnvelope(s) onto
// one aggregate's stream respecting concurrency constraints based on the
// expected MaxSequenceNumberUint the caller observed before deciding.
//
// All supplied envelopes must belong to the same aggregate.
//
// The insert query to append multiple envelopes atomically is heavier than the
// one built to append a single envelope. One command should typically only
// produce one envelope; only supply multiple envelopes if you are sure that
// you need to append them at once!
func (a Archive) Append(
	ctx context.Context,
	expectedMaxSequenceNumber history.MaxSequenceNumberUint,
	envelope history.StorableEnvelope,
	additionalEnvelopes ...history.StorableEnvelope,
) error {

	allEnvelopes := history.StorableEnvelopes{envelope}
	allEnvelopes = append(allEnvelopes, additionalEnvelopes...)

	for _, e := range allEnvelopes {
		if e.AggregateID != envelope.AggregateID {
			return history.ErrMixedAggregateEnvelopes
		}
	}

	sqlQuery, buildQueryErr := a.buildAppendQuery(allEnvelopes, expectedMaxSequenceNumber)
	if buildQueryErr != nil {
		return buildQueryErr
	}

	rowsAffected, duration, execErr := a.executeAppendQuery(ctx, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if err := a.validateAppendResult(rowsAffected, len(allEnvelopes), expectedMaxSequenceNumber); err != nil {
		return err
	}

	a.logOperation(
		logMsgEnvelopesAppended,
		logAttrAggregateID, envelope.AggregateID,
		logAttrEnvelopeCount, len(allEnvelopes),
		logAttrDurationMS, a.durationToMilliseconds(duration),
	)

	return nil
}

// buildAppendQuery builds the appropriate SQL query for single or multiple envelopes.
func (a Archive) buildAppendQuery(
	allEnvelopes history.StorableEnvelopes,
	expectedMaxSequenceNumber history.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	var sqlQuery sqlQueryString
	var buildQueryErr error

	switch len(allEnvelopes) {
	case 1:
		sqlQuery, buildQueryErr = a.buildInsertQueryForSingleEnvelope(allEnvelopes[0], expectedMaxSequenceNumber)

	default:
		sqlQuery, buildQueryErr = a.buildInsertQueryForMultipleEnvelopes(allEnvelopes, expectedMaxSequenceNumber)
	}

	if buildQueryErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error(), logAttrEnvelopeCount, len(allEnvelopes))
		}

		return "", buildQueryErr
	}

	return sqlQuery, nil
}

// executeAppendQuery executes the SQL append query and returns rows affected and duration.
func (a Archive) executeAppendQuery(ctx context.Context, sqlQuery string) (
	rowsAffectedInt64,
	queryDuration,
	error,
) {

	start := time.Now()
	tag, execErr := a.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	a.logQueryWithDuration(sqlQuery, logActionAppend, duration)

	if execErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, duration, errors.Join(history.ErrAppendingEnvelopeFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := tag.RowsAffected()
	if rowsAffectedErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, duration, errors.Join(history.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, duration, nil
}

// validateAppendResult checks if the append operation was successful and detects sequence conflicts.
func (a Archive) validateAppendResult(
	rowsAffected int64,
	expectedEnvelopeCount int,
	expectedMaxSequenceNumber history.MaxSequenceNumberUint,
) error {

	if rowsAffected < int64(expectedEnvelopeCount) {
		a.logOperation(
			logMsgSequenceConflict,
			logAttrExpectedEnvelopes, expectedEnvelopeCount,
			logAttrRowsAffected, rowsAffected,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
		)

		return history.ErrSequenceConflict
	}

	return nil
}

func (a Archive) buildSelectQuery(aggregateID string) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(a.envelopesTableName).
		Select(colEventID, colAggregateID, colSequenceNumber, colAggregateVersion, colEventType, colPayload, colCreatedAt).
		Where(goqu.Ex{colAggregateID: aggregateID}).
		Order(goqu.I(colSequenceNumber).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(history.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (a Archive) buildInsertQueryForSingleEnvelope(
	envelope history.StorableEnvelope,
	expectedMaxSequenceNumber history.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(a.envelopesTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(goqu.Ex{colAggregateID: envelope.AggregateID})

	// Define the SELECT for the INSERT
	selectStmt := builder.
		From(cteContext).
		Select(
			goqu.V(envelope.EventID),
			goqu.V(envelope.AggregateID),
			goqu.V(envelope.Sequence),
			goqu.V(envelope.AggregateVersion),
			goqu.V(envelope.EventType),
			goqu.V(envelope.PayloadJSON),
			goqu.V(envelope.CreatedAt),
		).
		Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber)))

	// Finalize the full INSERT query
	insertStmt := builder.
		Insert(a.envelopesTableName).
		Cols(colEventID, colAggregateID, colSequenceNumber, colAggregateVersion, colEventType, colPayload, colCreatedAt).
		FromQuery(selectStmt).
		With(cteContext, cteStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgSingleEnvelopeSQLFailed, logAttrError, toSQLErr.Error(), logAttrEventType, envelope.EventType)
		}
		return "", errors.Join(history.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (a Archive) buildInsertQueryForMultipleEnvelopes(
	envelopes history.StorableEnvelopes,
	expectedMaxSequenceNumber history.MaxSequenceNumberUint,
) (sqlQueryString, error) {

	builder := goqu.Dialect(dialectPostgres)

	// Define the subquery for the CTE
	cteStmt := builder.
		From(a.envelopesTableName).
		Select(goqu.MAX(colSequenceNumber).As(aliasMaxSeq)).
		Where(goqu.Ex{colAggregateID: envelopes[0].AggregateID})

	// Create individual SELECT statements for each envelope
	unionStatements := make([]*goqu.SelectDataset, len(envelopes))
	for i, envelope := range envelopes {
		unionStatements[i] = builder.
			Select(
				goqu.L(castText, envelope.EventID).As(colEventID),
				goqu.L(castText, envelope.AggregateID).As(colAggregateID),
				goqu.L(castBigint, envelope.Sequence).As(colSequenceNumber),
				goqu.L(castBigint, envelope.AggregateVersion).As(colAggregateVersion),
				goqu.L(castText, envelope.EventType).As(colEventType),
				goqu.L(castJsonb, envelope.PayloadJSON).As(colPayload),
				goqu.L(castTimestamp, envelope.CreatedAt).As(colCreatedAt),
			)
	}

	// Combine all SELECT statements with UNION ALL
	valuesStmt := unionStatements[0]
	for i := 1; i < len(unionStatements); i++ {
		valuesStmt = valuesStmt.UnionAll(unionStatements[i])
	}

	// Finalize the full INSERT query
	valsEventID := fmt.Sprintf("%s.%s", cteVals, colEventID)
	valsAggregateID := fmt.Sprintf("%s.%s", cteVals, colAggregateID)
	valsSequence := fmt.Sprintf("%s.%s", cteVals, colSequenceNumber)
	valsAggregateVersion := fmt.Sprintf("%s.%s", cteVals, colAggregateVersion)
	valsEventType := fmt.Sprintf("%s.%s", cteVals, colEventType)
	valsPayload := fmt.Sprintf("%s.%s", cteVals, colPayload)
	valsCreatedAt := fmt.Sprintf("%s.%s", cteVals, colCreatedAt)

	insertStmt := builder.
		Insert(a.envelopesTableName).
		Cols(colEventID, colAggregateID, colSequenceNumber, colAggregateVersion, colEventType, colPayload, colCreatedAt).
		With(cteContext, cteStmt).
		With(cteVals, valuesStmt).
		FromQuery(
			builder.From(cteContext, cteVals).
				Select(valsEventID, valsAggregateID, valsSequence, valsAggregateVersion, valsEventType, valsPayload, valsCreatedAt).
				Where(goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))),
		)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		if a.logger != nil {
			a.logger.Error(logMsgMultiEnvelopeSQLFailed, logAttrError, toSQLErr.Error(), logAttrEnvelopeCount, len(envelopes))
		}
		return "", errors.Join(history.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// logQueryWithDuration logs SQL queries with execution time at debug level if the logger is configured.
func (a Archive) logQueryWithDuration(
	sqlQuery string,
	action string,
	duration time.Duration,
) {

	if a.logger != nil {
		a.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, a.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (a Archive) logOperation(action string, args ...any) {
	if a.logger != nil {
		a.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (a Archive) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
