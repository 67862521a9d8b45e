// Package adapters provide database adapter implementations for the PostgreSQL store engine.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, including transactions, so the engine can run its
// conditional multi-statement writes on any supported connection type.
package adapters
