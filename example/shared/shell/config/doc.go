// Package config provides database configuration helpers for PostgreSQL
// connections for the example: Order processing in a small web shop.
//
// This package contains factory functions for creating database connections
// using different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB) with
// pre-configured DSNs for a single database and a primary/replica pair.
//
// This package is part of the shell (infrastructure) layer, providing
// database connection configuration for the envelope archive.
package config
