package fixtures

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/store"
)

// Store is the part of the storage contract the fixtures write through.
type Store interface {
	RegisterUser(ctx context.Context, user store.UserRecord, profile store.ProfileRecord) error
	InsertBook(ctx context.Context, book store.BookRecord) error
	PlaceOrder(ctx context.Context, order store.OrderRecord) error
}

// Clock hands out strictly increasing timestamps, one second apart.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock starting at a fixed point in time.
func NewClock() *Clock {
	return &Clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

// Next advances the clock and returns the new time.
func (c *Clock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(time.Second)

	return c.now
}

// NewID returns a fresh time-ordered UUID.
func NewID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	return id
}

// GivenRegisteredUser registers a user with a default profile and returns its ID.
func GivenRegisteredUser(t testing.TB, ctx context.Context, s Store, clock *Clock, username string) uuid.UUID {
	t.Helper()

	userID := NewID(t)
	createdAt := clock.Next()

	err := s.RegisterUser(
		ctx,
		store.UserRecord{ID: userID, Username: username, CreatedAt: createdAt},
		store.ProfileRecord{UserID: userID, Language: "es", UpdatedAt: createdAt},
	)
	require.NoError(t, err, "registering user %q in test setup", username)

	return userID
}

// GivenActiveBook lists an ACTIVE book and returns its ID.
func GivenActiveBook(
	t testing.TB,
	ctx context.Context,
	s Store,
	clock *Clock,
	authorID uuid.UUID,
	name string,
	price int64,
	genre string,
) uuid.UUID {
	t.Helper()

	bookID := NewID(t)

	err := s.InsertBook(ctx, store.BookRecord{
		ID:        bookID,
		Name:      name,
		Price:     price,
		Genre:     genre,
		Status:    store.BookStatusActive,
		AuthorID:  authorID,
		CreatedAt: clock.Next(),
	})
	require.NoError(t, err, "inserting book %q in test setup", name)

	return bookID
}

// GivenOrder places an order for an ACTIVE book and returns the order ID. The book becomes INACTIVE.
func GivenOrder(t testing.TB, ctx context.Context, s Store, clock *Clock, bookID, buyerID uuid.UUID) uuid.UUID {
	t.Helper()

	orderID := NewID(t)

	err := s.PlaceOrder(ctx, store.OrderRecord{
		ID:              orderID,
		CreatedAt:       clock.Next(),
		BookID:          bookID,
		UserID:          buyerID,
		PhoneNumber:     "+1 555 0100",
		Country:         "US",
		DeliveryAddress: "1 Main St",
	})
	require.NoError(t, err, "placing order in test setup")

	return orderID
}
