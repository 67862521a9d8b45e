// Package config provides the environment-driven configuration of the bookstore.
//
// It loads settings from the process environment, optionally seeded from a .env file,
// and contains factory functions for PostgreSQL connections using the three supported
// drivers (pgx.Pool, sql.DB, sqlx.DB) and for the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
