// Package listbooks implements the List Books query use case.
//
// This is the public catalogue: only ACTIVE books are returned, optionally narrowed to one genre
// and to books whose name or author username contains a search term. Results are ordered by
// creation time unless a price ordering is requested. An unknown ordering is ignored.
//
// The query runs with eventual consistency, so it may be served from a read replica.
package listbooks
