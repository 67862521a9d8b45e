package clearuserorders

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	DeleteOrdersByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// CommandHandler orchestrates the Decide -> Delete workflow.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle deletes the orders of the caller. RowsAffected carries the number of deleted orders.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := Decide(command).HasError(); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	var deleted int64

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		deleted, execErr = h.store.DeleteOrdersByUser(store.WithStrongConsistency(retryCtx), command.Owner)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if deleted == 0 {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics, deleted), nil
}
