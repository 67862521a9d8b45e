// Package store provides the storage abstractions shared by the bookstore
// storage engines.
//
// This package defines the primitive records that engines persist, the book
// filter used for catalogue queries, the consistency context helpers, the
// dependency-free observability interfaces and the common error definitions.
//
// Records carry only primitive values (UUIDs, strings, integers, timestamps).
// Mapping them to domain types is the job of the application layer, which keeps
// this package free of business rules.
//
// Two engines implement the storage contract:
//   - postgresengine: PostgreSQL via pgx, database/sql (lib/pq) or sqlx
//   - memengine: an in-process engine guarded by a mutex, used by tests and local runs
//
// Common usage pattern:
//
//	filter := store.BuildBookFilter().
//		WithStatus(store.BookStatusActive).
//		WithGenre("FANTASY").
//		Searching("tolkien").
//		SortedBy(store.SortByPriceAsc).
//		Finalize()
//
//	books, err := bookStore.QueryBooks(store.WithEventualConsistency(ctx), filter)
//	if err != nil {
//		// handle error
//	}
package store
