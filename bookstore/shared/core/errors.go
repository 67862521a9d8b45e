package core

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks input that violates a field rule. Nothing was changed.
	ErrValidation = errors.New("validation failed")

	// ErrAuthorization marks a caller that is not allowed to perform the operation.
	ErrAuthorization = errors.New("not authorized")

	// ErrNotFound marks a missing book, order, or profile.
	ErrNotFound = errors.New("not found")

	// ErrSelfPurchase marks an attempt to order one's own book.
	ErrSelfPurchase = errors.New("you can't buy your own book")

	// ErrAlreadySold marks an attempt to order a book that is no longer active.
	ErrAlreadySold = errors.New("this book is inactive")

	// ErrUsernameTaken marks a registration with a username that is already in use.
	ErrUsernameTaken = fmt.Errorf("%w: username is already taken", ErrValidation)
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}
