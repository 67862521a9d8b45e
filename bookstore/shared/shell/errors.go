package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store"
)

// ErrInvalidRecord is returned when a stored record does not map onto a valid domain value.
var ErrInvalidRecord = errors.New("stored record is invalid")

// TranslateStoreError maps the store sentinels a caller can act on onto core errors.
// The subject names what was looked up or written, e.g. "book 0198...".
// All other errors are returned unchanged.
func TranslateStoreError(err error, subject string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %s", core.ErrNotFound, subject)
	case errors.Is(err, store.ErrDuplicateKey):
		return fmt.Errorf("%w: %s already exists", core.ErrValidation, subject)
	default:
		return err
	}
}

// ProfileReader is the part of the store that tells whether a user is registered.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error)
}

// RequireRegistered returns core.ErrAuthorization unless the user has registered.
func RequireRegistered(ctx context.Context, profiles ProfileReader, userID core.UserID) error {
	_, err := profiles.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: user %s is not registered", core.ErrAuthorization, userID)
	}

	return err
}
