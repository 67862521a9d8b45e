package createorder

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
	GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error)
	PlaceOrder(ctx context.Context, order store.OrderRecord) error
}

// CommandHandler orchestrates the Read -> Decide -> PlaceOrder workflow with retry.
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

// Handle executes the order transaction.
//
// Resilience: a lost compare-and-swap on the book status is retried with exponential backoff.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := Validate(command); err != nil {
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

// executeCommand contains the part of the workflow that is repeated after a conflict.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) error {
	ctx = store.WithStrongConsistency(ctx)

	record, err := h.store.GetBook(ctx, command.BookID)
	if err != nil {
		return shell.TranslateStoreError(err, fmt.Sprintf("book %s", command.BookID))
	}

	book, err := shell.BookFromRecord(record)
	if err != nil {
		return err
	}

	if decisionErr := Decide(book, command).HasError(); decisionErr != nil {
		return decisionErr
	}

	if err = shell.RequireRegistered(ctx, h.store, command.Caller); err != nil {
		return err
	}

	err = h.store.PlaceOrder(ctx, shell.RecordFromOrder(command.order()))

	return shell.TranslateStoreError(err, fmt.Sprintf("order %s", command.OrderID))
}
