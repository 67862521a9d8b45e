package store

import (
	"time"

	"github.com/google/uuid"
)

// Book status values as persisted in the books table.
const (
	BookStatusActive   = "ACTIVE"
	BookStatusInactive = "INACTIVE"
)

// UserRecord is the persisted form of a registered account.
type UserRecord struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}

// ProfileRecord is the persisted form of a user's profile. It shares its key with the user.
type ProfileRecord struct {
	UserID      uuid.UUID
	Language    string
	DisplayName string
	Email       string
	PhoneNumber string
	UpdatedAt   time.Time
}

// BookRecord is the persisted form of a listed book.
//
// AuthorUsername is populated on reads from the owning user and ignored on writes.
type BookRecord struct {
	ID             uuid.UUID
	Name           string
	Price          int64
	Genre          string
	Status         string
	AuthorID       uuid.UUID
	AuthorUsername string
	CreatedAt      time.Time
}

// OrderRecord is the persisted form of a purchase.
type OrderRecord struct {
	ID              uuid.UUID
	CreatedAt       time.Time
	BookID          uuid.UUID
	UserID          uuid.UUID
	PhoneNumber     string
	Country         string
	DeliveryAddress string
}

// BookRecords is a collection of BookRecord.
type BookRecords = []BookRecord

// OrderRecords is a collection of OrderRecord.
type OrderRecords = []OrderRecord
