package createbook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error)
	InsertBook(ctx context.Context, book store.BookRecord) error
}

// CommandHandler orchestrates the Decide -> Insert workflow.
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

// Handle validates the command and stores the new book.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := Decide(command).HasError(); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		return h.executeCommand(retryCtx, command)
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(retryMetrics, 1), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	ctx = store.WithStrongConsistency(ctx)

	if err := shell.RequireRegistered(ctx, h.store, command.Caller); err != nil {
		return err
	}

	err := h.store.InsertBook(ctx, shell.RecordFromBook(command.book()))

	return shell.TranslateStoreError(err, fmt.Sprintf("book %s", command.BookID))
}
