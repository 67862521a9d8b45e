package postgresengine

import (
	"github.com/AntonStoeckl/bookstore/store"
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithSchemaName sets the PostgreSQL schema that holds the bookstore tables.
func WithSchemaName(schemaName string) Option {
	return func(s *Store) error {
		if schemaName == "" {
			return store.ErrEmptySchemaName
		}

		s.schemaName = schemaName

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Row counts, durations, concurrency conflicts (production-safe)
// Warn level: Non-critical issues like rollback or cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger store.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The collector receives operation durations, row counts, concurrency conflicts, and database errors.
func WithMetrics(collector store.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
func WithTracing(collector store.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It receives one entry per finished operation, correlated with the active trace when tracing is enabled.
func WithContextualLogger(logger store.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
