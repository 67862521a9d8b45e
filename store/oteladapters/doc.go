// Package oteladapters provides OpenTelemetry implementations of the store observability interfaces.
//
// The same adapters serve the storage engines and the bookstore command and query handlers,
// since the handler layer aliases the store interfaces.
package oteladapters
