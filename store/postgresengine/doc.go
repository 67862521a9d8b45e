// Package postgresengine provides a PostgreSQL implementation of the bookstore storage contract.
//
// This package supports multiple PostgreSQL database adapters:
//   - pgx.Pool (github.com/jackc/pgx/v5/pgxpool), optionally with a replica pool
//   - sql.DB (database/sql with github.com/lib/pq)
//   - sqlx.DB (github.com/jmoiron/sqlx)
//
// All adapters behave identically. Statements are rendered with goqu in prepared mode.
//
// Purchases are conditional writes: PlaceOrder flips the book from ACTIVE to INACTIVE
// with a compare-and-swap UPDATE and inserts the order in the same transaction.
// If the UPDATE affects no rows the transaction is rolled back and
// store.ErrConcurrencyConflict is returned, so the caller can re-read and decide again.
//
// Example usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	bookStore, err := postgresengine.NewStoreFromPGXPool(pool,
//		postgresengine.WithLogger(logger),
//		postgresengine.WithMetrics(metricsCollector),
//	)
//
//	if err := bookStore.Migrate(ctx); err != nil {
//		// handle error
//	}
package postgresengine
