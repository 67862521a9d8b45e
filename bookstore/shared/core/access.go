package core

import (
	"fmt"

	"github.com/google/uuid"
)

// IsOwner reports whether the caller listed the book.
func IsOwner(caller UserID, book Book) bool {
	return caller == book.AuthorID
}

// IsMyProfile reports whether the caller is the owner of the requested user-scoped data.
func IsMyProfile(caller UserID, owner UserID) bool {
	return caller == owner
}

// RequireAuthenticated returns ErrAuthorization for the anonymous caller.
func RequireAuthenticated(caller UserID) error {
	if caller == uuid.Nil {
		return fmt.Errorf("%w: authentication required", ErrAuthorization)
	}

	return nil
}

// RequireOwner returns ErrAuthorization unless the caller listed the book.
func RequireOwner(caller UserID, book Book) error {
	if !IsOwner(caller, book) {
		return fmt.Errorf("%w: only the author may change book %s", ErrAuthorization, book.ID)
	}

	return nil
}

// RequireMyProfile returns ErrAuthorization unless the caller owns the requested data.
func RequireMyProfile(caller UserID, owner UserID) error {
	if err := RequireAuthenticated(caller); err != nil {
		return err
	}

	if !IsMyProfile(caller, owner) {
		return fmt.Errorf("%w: data of user %s is private", ErrAuthorization, owner)
	}

	return nil
}
