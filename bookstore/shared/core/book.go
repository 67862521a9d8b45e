package core

import (
	"strings"
)

// MaxBookNameLength is the maximum number of characters of a book name.
const MaxBookNameLength = 60

// Genre classifies a book.
type Genre string

const (
	GenreFantasy    Genre = "FANTASY"
	GenreAdventure  Genre = "ADVENTURE"
	GenreRomance    Genre = "ROMANCE"
	GenreDetective  Genre = "DETECTIVE"
	GenreThriller   Genre = "THRILLER"
	GenreHistorical Genre = "HISTORICAL"
)

// Genres lists every valid genre.
var Genres = []Genre{GenreFantasy, GenreAdventure, GenreRomance, GenreDetective, GenreThriller, GenreHistorical}

// ParseGenre returns the genre named by s, ignoring case.
func ParseGenre(s string) (Genre, error) {
	candidate := Genre(strings.ToUpper(strings.TrimSpace(s)))

	for _, genre := range Genres {
		if genre == candidate {
			return genre, nil
		}
	}

	return "", validationError("genre %q is not one of %v", s, Genres)
}

// BookStatus tells whether a book can still be ordered.
type BookStatus string

const (
	// BookStatusActive is the status of a book that can be ordered.
	BookStatusActive BookStatus = "ACTIVE"

	// BookStatusInactive is the status of a sold book. It is final.
	BookStatusInactive BookStatus = "INACTIVE"
)

// ParseBookStatus returns the status named by s.
func ParseBookStatus(s string) (BookStatus, error) {
	switch status := BookStatus(s); status {
	case BookStatusActive, BookStatusInactive:
		return status, nil
	default:
		return "", validationError("book status %q is unknown", s)
	}
}

// Book is a listed book.
type Book struct {
	ID             BookID
	Name           string
	Price          int64
	Genre          Genre
	Status         BookStatus
	AuthorID       UserID
	AuthorUsername string
	CreatedAt      CreatedAt
}

// IsActive reports whether the book can still be ordered.
func (b Book) IsActive() bool {
	return b.Status == BookStatusActive
}

// ValidateBookName checks that a book name is non-blank and not too long.
func ValidateBookName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationError("book name must not be blank")
	}

	return checkText("book name", name, MaxBookNameLength)
}

// ValidatePrice checks that a price is not negative.
func ValidatePrice(price int64) error {
	if price < 0 {
		return validationError("price must not be negative")
	}

	return nil
}
