package shell

import (
	"context"
)

// Command represents the contract for all command types of the bookstore.
// Each command encapsulates the intent and parameters needed to execute one business operation,
// including the identity of the caller.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands.
// Handlers orchestrate the command workflow: reading current state, deciding, and writing.
// Handlers return HandlerResult containing business outcomes (idempotency, affected rows)
// and execution metadata (retry info).
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types of the bookstore.
// The QueryType method enables polymorphic handling and observability instrumentation.
type Query interface {
	QueryType() string
}

// QueryHandler defines the contract for components that process queries and return read models.
// The generic parameters Q and R ensure type safety between queries and their results.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
