// Package adapters provides database adapter implementations for the
// PostgreSQL envelope archive.
//
// This package implements the adapter pattern to support multiple PostgreSQL
// database libraries: pgx.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through a common DBAdapter interface, allowing the
// archive to work seamlessly with any supported database connection type.
//
// The pgx adapter additionally supports an optional read replica; reads are
// routed to it when the caller signals eventual consistency through the
// context (see the history package's consistency helpers).
package adapters
