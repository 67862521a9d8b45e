// Package shell provides the infrastructure shared by the bookstore command and query handlers.
//
// It converts between the primitive store records and the core domain types, translates
// store errors into core errors, retries optimistic concurrency conflicts with exponential
// backoff, and offers the metrics, tracing, and logging helpers used by the observable wrappers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
