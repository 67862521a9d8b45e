package updatebook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error)
	UpdateBook(ctx context.Context, book store.BookRecord) error
}

// CommandHandler orchestrates the Read -> Decide -> Update workflow.
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

// Handle executes the update with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics, 1), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	ctx = store.WithStrongConsistency(ctx)
	subject := fmt.Sprintf("book %s", command.BookID)

	record, err := h.store.GetBook(ctx, command.BookID)
	if err != nil {
		return false, shell.TranslateStoreError(err, subject)
	}

	book, err := shell.BookFromRecord(record)
	if err != nil {
		return false, err
	}

	result := Decide(book, command)
	if decisionErr := result.HasError(); decisionErr != nil {
		return false, decisionErr
	}

	if result.IsIdempotent() {
		return true, nil
	}

	updateErr := h.store.UpdateBook(ctx, shell.RecordFromBook(command.Apply(book)))

	return false, shell.TranslateStoreError(updateErr, subject)
}
