// Package storecontract holds the behavior every storage engine must show.
//
// Engine test packages call Run with a factory that returns an empty store.
package storecontract

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

// Store is the full storage contract.
type Store interface {
	RegisterUser(ctx context.Context, user store.UserRecord, profile store.ProfileRecord) error
	GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error)
	UpdateProfile(ctx context.Context, profile store.ProfileRecord) error
	InsertBook(ctx context.Context, book store.BookRecord) error
	GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error)
	QueryBooks(ctx context.Context, filter store.BookFilter) (store.BookRecords, error)
	UpdateBook(ctx context.Context, book store.BookRecord) error
	PlaceOrder(ctx context.Context, order store.OrderRecord) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (store.OrderRecord, error)
	QueryOrdersByUser(ctx context.Context, userID uuid.UUID) (store.OrderRecords, error)
	DeleteOrdersByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Factory returns an empty Store for one subtest.
type Factory func(t *testing.T) Store

// Run executes the contract against the stores built by newStore.
// The subtests run sequentially, so engines backed by one shared database can truncate it in newStore.
func Run(t *testing.T, newStore Factory) {
	tests := []struct {
		name string
		run  func(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock)
	}{
		{"RegisterUser stores the user with its profile", registerUserStoresProfile},
		{"RegisterUser rejects a taken username", registerUserRejectsTakenUsername},
		{"RegisterUser rejects a taken user ID", registerUserRejectsTakenID},
		{"UpdateProfile overwrites the profile", updateProfileOverwrites},
		{"UpdateProfile of an unknown user is NotFound", updateProfileUnknown},
		{"GetBook returns the book with its author username", getBookWithAuthorUsername},
		{"GetBook of an unknown book is NotFound", getBookUnknown},
		{"InsertBook requires a registered author", insertBookRequiresAuthor},
		{"UpdateBook keeps the status", updateBookKeepsStatus},
		{"UpdateBook of an unknown book is NotFound", updateBookUnknown},
		{"QueryBooks filters and sorts", queryBooksFiltersAndSorts},
		{"QueryBooks search treats wildcards literally", queryBooksSearchIsLiteral},
		{"PlaceOrder sells the book once", placeOrderSellsOnce},
		{"PlaceOrder of an unknown book is a conflict", placeOrderUnknownBook},
		{"PlaceOrder with an unknown buyer leaves the book ACTIVE", placeOrderUnknownBuyer},
		{"PlaceOrder lets exactly one concurrent buyer win", placeOrderConcurrently},
		{"GetOrder of an unknown order is NotFound", getOrderUnknown},
		{"QueryOrdersByUser returns oldest first", queryOrdersOldestFirst},
		{"DeleteOrdersByUser deletes only the user's orders", deleteOrdersByUser},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			tc.run(t, ctx, newStore(t), fixtures.NewClock())
		})
	}
}

func registerUserStoresProfile(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	userID := fixtures.NewID(t)
	createdAt := clock.Next()

	// act
	err := s.RegisterUser(
		ctx,
		store.UserRecord{ID: userID, Username: "ana", CreatedAt: createdAt},
		store.ProfileRecord{UserID: userID, Language: "uk", DisplayName: "Ana", Email: "ana@example.com", UpdatedAt: createdAt},
	)

	// assert
	require.NoError(t, err)

	profile, err := s.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
	assert.Equal(t, "uk", profile.Language)
	assert.Equal(t, "Ana", profile.DisplayName)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Empty(t, profile.PhoneNumber)
	assert.True(t, createdAt.Equal(profile.UpdatedAt))
}

func registerUserRejectsTakenUsername(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	fixtures.GivenRegisteredUser(t, ctx, s, clock, "ana")
	otherID := fixtures.NewID(t)
	createdAt := clock.Next()

	// act
	err := s.RegisterUser(
		ctx,
		store.UserRecord{ID: otherID, Username: "ana", CreatedAt: createdAt},
		store.ProfileRecord{UserID: otherID, Language: "es", UpdatedAt: createdAt},
	)

	// assert
	assert.ErrorIs(t, err, store.ErrDuplicateKey)

	_, err = s.GetProfile(ctx, otherID)
	assert.ErrorIs(t, err, store.ErrNotFound, "no profile must be stored for the rejected user")
}

func registerUserRejectsTakenID(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	userID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "ana")
	createdAt := clock.Next()

	// act
	err := s.RegisterUser(
		ctx,
		store.UserRecord{ID: userID, Username: "bob", CreatedAt: createdAt},
		store.ProfileRecord{UserID: userID, Language: "uk", UpdatedAt: createdAt},
	)

	// assert
	assert.ErrorIs(t, err, store.ErrDuplicateKey)

	profile, err := s.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "es", profile.Language, "the existing profile must be untouched")
}

func updateProfileOverwrites(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	userID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "ana")
	updatedAt := clock.Next()

	// act
	err := s.UpdateProfile(ctx, store.ProfileRecord{
		UserID:      userID,
		Language:    "en-us",
		DisplayName: "Ana B.",
		Email:       "ana@example.com",
		PhoneNumber: "+34 600 000 000",
		UpdatedAt:   updatedAt,
	})

	// assert
	require.NoError(t, err)

	profile, err := s.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "en-us", profile.Language)
	assert.Equal(t, "Ana B.", profile.DisplayName)
	assert.Equal(t, "+34 600 000 000", profile.PhoneNumber)
	assert.True(t, updatedAt.Equal(profile.UpdatedAt))
}

func updateProfileUnknown(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// act
	err := s.UpdateProfile(ctx, store.ProfileRecord{UserID: fixtures.NewID(t), Language: "es", UpdatedAt: clock.Next()})

	// assert
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func getBookWithAuthorUsername(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "tolkien")
	bookID := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "The Hobbit", 1999, "FANTASY")

	// act
	book, err := s.GetBook(ctx, bookID)

	// assert
	require.NoError(t, err)
	assert.Equal(t, bookID, book.ID)
	assert.Equal(t, "The Hobbit", book.Name)
	assert.Equal(t, int64(1999), book.Price)
	assert.Equal(t, "FANTASY", book.Genre)
	assert.Equal(t, store.BookStatusActive, book.Status)
	assert.Equal(t, authorID, book.AuthorID)
	assert.Equal(t, "tolkien", book.AuthorUsername)
}

func getBookUnknown(t *testing.T, ctx context.Context, s Store, _ *fixtures.Clock) {
	// act
	_, err := s.GetBook(ctx, fixtures.NewID(t))

	// assert
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func insertBookRequiresAuthor(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// act
	err := s.InsertBook(ctx, store.BookRecord{
		ID:        fixtures.NewID(t),
		Name:      "Orphan",
		Price:     100,
		Genre:     "ROMANCE",
		Status:    store.BookStatusActive,
		AuthorID:  fixtures.NewID(t),
		CreatedAt: clock.Next(),
	})

	// assert
	assert.ErrorIs(t, err, store.ErrExecFailed)
}

func updateBookKeepsStatus(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	buyerID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer")
	bookID := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Draft", 500, "ROMANCE")
	fixtures.GivenOrder(t, ctx, s, clock, bookID, buyerID)

	// act
	err := s.UpdateBook(ctx, store.BookRecord{
		ID:     bookID,
		Name:   "Final",
		Price:  750,
		Genre:  "THRILLER",
		Status: store.BookStatusActive,
	})

	// assert
	require.NoError(t, err)

	book, err := s.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Final", book.Name)
	assert.Equal(t, int64(750), book.Price)
	assert.Equal(t, "THRILLER", book.Genre)
	assert.Equal(t, store.BookStatusInactive, book.Status, "the status must only change through PlaceOrder")
	assert.Equal(t, authorID, book.AuthorID)
}

func updateBookUnknown(t *testing.T, ctx context.Context, s Store, _ *fixtures.Clock) {
	// act
	err := s.UpdateBook(ctx, store.BookRecord{ID: fixtures.NewID(t), Name: "Ghost", Price: 1, Genre: "FANTASY"})

	// assert
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func queryBooksFiltersAndSorts(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	tolkien := fixtures.GivenRegisteredUser(t, ctx, s, clock, "Tolkien")
	christie := fixtures.GivenRegisteredUser(t, ctx, s, clock, "christie")
	buyer := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer")

	hobbit := fixtures.GivenActiveBook(t, ctx, s, clock, tolkien, "The Hobbit", 1500, "FANTASY")
	silmarillion := fixtures.GivenActiveBook(t, ctx, s, clock, tolkien, "Silmarillion", 900, "FANTASY")
	orient := fixtures.GivenActiveBook(t, ctx, s, clock, christie, "Murder on the Orient Express", 1500, "DETECTIVE")
	nile := fixtures.GivenActiveBook(t, ctx, s, clock, christie, "Death on the Nile", 300, "DETECTIVE")
	fixtures.GivenOrder(t, ctx, s, clock, nile, buyer)

	active := store.BuildBookFilter().WithStatus(store.BookStatusActive)

	tests := []struct {
		name     string
		filter   store.BookFilter
		expected []uuid.UUID
	}{
		{
			name:     "any status in creation order",
			filter:   store.BuildBookFilter().Finalize(),
			expected: []uuid.UUID{hobbit, silmarillion, orient, nile},
		},
		{
			name:     "active only",
			filter:   active.Finalize(),
			expected: []uuid.UUID{hobbit, silmarillion, orient},
		},
		{
			name:     "genre",
			filter:   active.WithGenre("DETECTIVE").Finalize(),
			expected: []uuid.UUID{orient},
		},
		{
			name:     "author in any status",
			filter:   store.BuildBookFilter().ByAuthor(christie).Finalize(),
			expected: []uuid.UUID{orient, nile},
		},
		{
			name:     "search matches the name case-insensitively",
			filter:   active.Searching("HOBBIT").Finalize(),
			expected: []uuid.UUID{hobbit},
		},
		{
			name:     "search matches the author username",
			filter:   active.Searching("tolk").Finalize(),
			expected: []uuid.UUID{hobbit, silmarillion},
		},
		{
			name:     "price ascending, ties in creation order",
			filter:   active.SortedBy(store.SortByPriceAsc).Finalize(),
			expected: []uuid.UUID{silmarillion, hobbit, orient},
		},
		{
			name:     "price descending, ties in creation order",
			filter:   active.SortedBy(store.SortByPriceDesc).Finalize(),
			expected: []uuid.UUID{hobbit, orient, silmarillion},
		},
		{
			name:     "no match",
			filter:   active.WithGenre("ROMANCE").Finalize(),
			expected: []uuid.UUID{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			books, err := s.QueryBooks(ctx, tc.filter)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.expected, bookIDs(books))
		})
	}
}

func queryBooksSearchIsLiteral(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	pure := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "100% Pure", 100, "ROMANCE")
	fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Plain_Title", 100, "ROMANCE")

	// act
	books, err := s.QueryBooks(ctx, store.BuildBookFilter().Searching("%").Finalize())

	// assert
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{pure}, bookIDs(books))
}

func placeOrderSellsOnce(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	buyerA := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer-a")
	buyerB := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer-b")
	bookID := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Unique", 1000, "ADVENTURE")
	orderID := fixtures.GivenOrder(t, ctx, s, clock, bookID, buyerA)

	// act
	err := s.PlaceOrder(ctx, order(t, clock, bookID, buyerB))

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)

	book, err := s.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, store.BookStatusInactive, book.Status)

	placed, err := s.GetOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, bookID, placed.BookID)
	assert.Equal(t, buyerA, placed.UserID)
	assert.Equal(t, "US", placed.Country)

	ordersOfB, err := s.QueryOrdersByUser(ctx, buyerB)
	require.NoError(t, err)
	assert.Empty(t, ordersOfB, "the losing buyer must not get an order")
}

func placeOrderUnknownBook(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	buyerID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer")

	// act
	err := s.PlaceOrder(ctx, order(t, clock, fixtures.NewID(t), buyerID))

	// assert
	assert.ErrorIs(t, err, store.ErrConcurrencyConflict)
}

func placeOrderUnknownBuyer(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	bookID := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Still Here", 1000, "ADVENTURE")

	// act
	err := s.PlaceOrder(ctx, order(t, clock, bookID, fixtures.NewID(t)))

	// assert
	assert.ErrorIs(t, err, store.ErrExecFailed)

	book, err := s.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, store.BookStatusActive, book.Status, "a failed order must not sell the book")
}

func placeOrderConcurrently(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	const numBuyers = 8

	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	bookID := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Contested", 1000, "THRILLER")

	orders := make([]store.OrderRecord, numBuyers)
	for i := range orders {
		buyerID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer-"+string(rune('a'+i)))
		orders[i] = order(t, clock, bookID, buyerID)
	}

	// act
	errs := make([]error, numBuyers)

	var wg sync.WaitGroup
	for i := range orders {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()
			errs[i] = s.PlaceOrder(ctx, orders[i])
		}(i)
	}

	wg.Wait()

	// assert
	var succeeded, conflicted int

	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, store.ErrConcurrencyConflict):
			conflicted++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, numBuyers-1, conflicted)

	var placed int

	for _, o := range orders {
		userOrders, err := s.QueryOrdersByUser(ctx, o.UserID)
		require.NoError(t, err)

		placed += len(userOrders)
	}

	assert.Equal(t, 1, placed)
}

func getOrderUnknown(t *testing.T, ctx context.Context, s Store, _ *fixtures.Clock) {
	// act
	_, err := s.GetOrder(ctx, fixtures.NewID(t))

	// assert
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func queryOrdersOldestFirst(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	buyerID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer")
	first := fixtures.GivenOrder(t, ctx, s, clock, fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "One", 100, "FANTASY"), buyerID)
	second := fixtures.GivenOrder(t, ctx, s, clock, fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Two", 100, "FANTASY"), buyerID)
	third := fixtures.GivenOrder(t, ctx, s, clock, fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Three", 100, "FANTASY"), buyerID)

	// act
	orders, err := s.QueryOrdersByUser(ctx, buyerID)

	// assert
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, []uuid.UUID{first, second, third}, []uuid.UUID{orders[0].ID, orders[1].ID, orders[2].ID})

	empty, err := s.QueryOrdersByUser(ctx, authorID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func deleteOrdersByUser(t *testing.T, ctx context.Context, s Store, clock *fixtures.Clock) {
	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, s, clock, "author")
	buyerA := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer-a")
	buyerB := fixtures.GivenRegisteredUser(t, ctx, s, clock, "buyer-b")
	bookOne := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "One", 100, "FANTASY")
	bookTwo := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Two", 100, "FANTASY")
	bookThree := fixtures.GivenActiveBook(t, ctx, s, clock, authorID, "Three", 100, "FANTASY")
	fixtures.GivenOrder(t, ctx, s, clock, bookOne, buyerA)
	fixtures.GivenOrder(t, ctx, s, clock, bookTwo, buyerA)
	orderOfB := fixtures.GivenOrder(t, ctx, s, clock, bookThree, buyerB)

	// act
	deleted, err := s.DeleteOrdersByUser(ctx, buyerA)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	ordersOfA, err := s.QueryOrdersByUser(ctx, buyerA)
	require.NoError(t, err)
	assert.Empty(t, ordersOfA)

	_, err = s.GetOrder(ctx, orderOfB)
	assert.NoError(t, err, "other users' orders must survive")

	for _, bookID := range []uuid.UUID{bookOne, bookTwo} {
		book, getErr := s.GetBook(ctx, bookID)
		require.NoError(t, getErr)
		assert.Equal(t, store.BookStatusInactive, book.Status, "deleting orders must not relist books")
	}

	deletedAgain, err := s.DeleteOrdersByUser(ctx, buyerA)
	require.NoError(t, err)
	assert.Zero(t, deletedAgain)
}

func order(t *testing.T, clock *fixtures.Clock, bookID, buyerID uuid.UUID) store.OrderRecord {
	return store.OrderRecord{
		ID:              fixtures.NewID(t),
		CreatedAt:       clock.Next(),
		BookID:          bookID,
		UserID:          buyerID,
		PhoneNumber:     "+1 555 0199",
		Country:         "US",
		DeliveryAddress: "2 Side St",
	}
}

func bookIDs(books store.BookRecords) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(books))
	for _, book := range books {
		ids = append(ids, book.ID)
	}

	return ids
}
