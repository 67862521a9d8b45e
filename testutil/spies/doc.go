// Package spies provides test doubles for the store observability interfaces and for slog.
//
// The spies record every call so tests can assert on emitted metrics, spans, and log records.
package spies
