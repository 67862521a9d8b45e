package core

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// UserID identifies a registered user. It is the subject of the caller's bearer token.
type UserID = uuid.UUID

// BookID identifies a book listing.
type BookID = uuid.UUID

// OrderID identifies an order.
type OrderID = uuid.UUID

// CreatedAt represents when a record was created.
type CreatedAt = time.Time

// ToCreatedAt converts a time to CreatedAt with UTC normalization and microsecond precision,
// which is what PostgreSQL stores.
func ToCreatedAt(t time.Time) CreatedAt {
	return t.UTC().Truncate(time.Microsecond)
}

// checkText rejects text that is not valid UTF-8 or has more than limit characters.
func checkText(field, s string, limit int) error {
	if !utf8.ValidString(s) {
		return validationError("%s must be valid UTF-8", field)
	}

	if utf8.RuneCountInString(s) > limit {
		return validationError("%s must not exceed %d characters", field, limit)
	}

	return nil
}
