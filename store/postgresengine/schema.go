package postgresengine

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/bookstore/store"
)

const operationMigrate = "migrate"

// schemaStatements create the bookstore tables. %[1]s is replaced by the quoted schema name.
var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS %[1]s`,

	`CREATE TABLE IF NOT EXISTS %[1]s.users (
		id         UUID PRIMARY KEY,
		username   VARCHAR(150) NOT NULL UNIQUE CHECK (username <> ''),
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS %[1]s.profiles (
		user_id      UUID PRIMARY KEY REFERENCES %[1]s.users (id) ON DELETE CASCADE,
		language     VARCHAR(7) NOT NULL DEFAULT 'es' CHECK (language IN ('en-us', 'uk', 'es')),
		display_name VARCHAR(100) NOT NULL DEFAULT '',
		email        VARCHAR(254) NOT NULL DEFAULT '',
		phone_number VARCHAR(32) NOT NULL DEFAULT '',
		updated_at   TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS %[1]s.books (
		id         UUID PRIMARY KEY,
		name       VARCHAR(60) NOT NULL CHECK (name <> ''),
		price      BIGINT NOT NULL CHECK (price >= 0),
		genre      VARCHAR(16) NOT NULL
		           CHECK (genre IN ('FANTASY', 'ADVENTURE', 'ROMANCE', 'DETECTIVE', 'THRILLER', 'HISTORICAL')),
		status     VARCHAR(8) NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'INACTIVE')),
		author_id  UUID NOT NULL REFERENCES %[1]s.users (id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS books_status_genre_idx ON %[1]s.books (status, genre)`,

	`CREATE INDEX IF NOT EXISTS books_author_idx ON %[1]s.books (author_id)`,

	`CREATE TABLE IF NOT EXISTS %[1]s.orders (
		id               UUID PRIMARY KEY,
		created_at       TIMESTAMPTZ NOT NULL,
		book_id          UUID NOT NULL REFERENCES %[1]s.books (id) ON DELETE CASCADE,
		user_id          UUID NOT NULL REFERENCES %[1]s.users (id) ON DELETE CASCADE,
		phone_number     VARCHAR(32) NOT NULL CHECK (btrim(phone_number) <> ''),
		country          VARCHAR(64) NOT NULL CHECK (btrim(country) <> ''),
		delivery_address VARCHAR(255) NOT NULL CHECK (btrim(delivery_address) <> '')
	)`,

	`CREATE INDEX IF NOT EXISTS orders_user_created_idx ON %[1]s.orders (user_id, created_at, id)`,
}

// Migrate creates the schema, tables, and indexes if they don't exist yet. It is idempotent.
func (s Store) Migrate(ctx context.Context) error {
	ctx, observer := s.startOperation(ctx, operationMigrate)

	schema := pgx.Identifier{s.schemaName}.Sanitize()

	for _, statement := range schemaStatements {
		sqlQuery := fmt.Sprintf(statement, schema)

		if _, err := s.db.Exec(ctx, sqlQuery); err != nil {
			s.logError(logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
			return observer.finish(errors.Join(store.ErrExecFailed, err), 0)
		}

		s.logQueryWithDuration(sqlQuery, operationMigrate, 0)
	}

	return observer.finish(nil, len(schemaStatements))
}

// TableNames returns the schema-qualified, quoted names of all tables, children first.
// Test tooling uses it to truncate the store between tests.
func (s Store) TableNames() []string {
	names := make([]string, 0, 4)

	for _, table := range []string{tableOrders, tableBooks, tableProfiles, tableUsers} {
		names = append(names, pgx.Identifier{s.schemaName, table}.Sanitize())
	}

	return names
}
