package registeruser

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the CommandHandler.
type Store interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error)
	RegisterUser(ctx context.Context, user store.UserRecord, profile store.ProfileRecord) error
}

// CommandHandler orchestrates the Decide -> Read -> Insert workflow.
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

// Handle registers the user unless it is registered already.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if err := Decide(command).HasError(); err != nil {
		return shell.NewErrorResult(shell.RetryMetrics{}), err
	}

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

	registered, err := h.isRegistered(ctx, command.UserID)
	if err != nil || registered {
		return registered, err
	}

	profile := core.NewDefaultProfile(command.UserID, command.CreatedAt)

	err = h.store.RegisterUser(ctx, shell.RecordFromUser(command.user()), shell.RecordFromProfile(profile))
	if !errors.Is(err, store.ErrDuplicateKey) {
		return false, err
	}

	// Either a concurrent registration of the same ID won, or the username belongs to someone else.
	registered, err = h.isRegistered(ctx, command.UserID)
	if err != nil || registered {
		return registered, err
	}

	return false, core.ErrUsernameTaken
}

func (h CommandHandler) isRegistered(ctx context.Context, userID core.UserID) (bool, error) {
	_, err := h.store.GetProfile(ctx, userID)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
