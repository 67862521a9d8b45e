// Package memengine provides an in-process implementation of the bookstore storage contract.
//
// All state lives in maps guarded by one mutex, so every operation is atomic with respect to
// every other. PlaceOrder applies the same compare-and-swap rule as the PostgreSQL engine:
// it only succeeds while the book is ACTIVE and reports store.ErrConcurrencyConflict otherwise.
//
// The engine is meant for tests and local runs. Nothing is persisted.
package memengine

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/store"
)

const (
	logMsgConcurrencyConflict = "memengine: concurrency conflict detected"
	logAttrBookID             = "book_id"
)

// Store is the in-memory storage engine.
type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]store.UserRecord
	usernames map[string]uuid.UUID
	profiles  map[uuid.UUID]store.ProfileRecord
	books     map[uuid.UUID]store.BookRecord
	orders    map[uuid.UUID]store.OrderRecord
	logger    store.Logger
}

// Option defines a functional option for configuring Store.
type Option func(*Store)

// WithLogger sets the logger that receives concurrency conflicts at info level.
func WithLogger(logger store.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store.
func NewStore(options ...Option) *Store {
	s := &Store{
		users:     make(map[uuid.UUID]store.UserRecord),
		usernames: make(map[string]uuid.UUID),
		profiles:  make(map[uuid.UUID]store.ProfileRecord),
		books:     make(map[uuid.UUID]store.BookRecord),
		orders:    make(map[uuid.UUID]store.OrderRecord),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// RegisterUser stores a user together with its profile.
func (s *Store) RegisterUser(ctx context.Context, user store.UserRecord, profile store.ProfileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; ok {
		return fmt.Errorf("%w: user %s", store.ErrDuplicateKey, user.ID)
	}

	if _, ok := s.usernames[user.Username]; ok {
		return fmt.Errorf("%w: username %q", store.ErrDuplicateKey, user.Username)
	}

	s.users[user.ID] = user
	s.usernames[user.Username] = user.ID
	s.profiles[profile.UserID] = profile

	return nil
}

// GetProfile returns the profile of a user or store.ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error) {
	if err := ctx.Err(); err != nil {
		return store.ProfileRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return store.ProfileRecord{}, store.ErrNotFound
	}

	return profile, nil
}

// UpdateProfile overwrites the mutable fields of an existing profile.
func (s *Store) UpdateProfile(ctx context.Context, profile store.ProfileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[profile.UserID]; !ok {
		return store.ErrNotFound
	}

	s.profiles[profile.UserID] = profile

	return nil
}

// InsertBook stores a new book listing. The author must be a registered user.
func (s *Store) InsertBook(ctx context.Context, book store.BookRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.books[book.ID]; ok {
		return fmt.Errorf("%w: book %s", store.ErrDuplicateKey, book.ID)
	}

	if _, ok := s.users[book.AuthorID]; !ok {
		return errors.Join(store.ErrExecFailed, fmt.Errorf("memengine: author %s does not exist", book.AuthorID))
	}

	book.AuthorUsername = ""
	s.books[book.ID] = book

	return nil
}

// GetBook returns the book with the given ID, in any status, or store.ErrNotFound.
func (s *Store) GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error) {
	if err := ctx.Err(); err != nil {
		return store.BookRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[bookID]
	if !ok {
		return store.BookRecord{}, store.ErrNotFound
	}

	return s.withAuthorUsername(book), nil
}

// QueryBooks returns the books matching the filter in the order the filter requests.
func (s *Store) QueryBooks(ctx context.Context, filter store.BookFilter) (store.BookRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make(store.BookRecords, 0)

	for _, book := range s.books {
		book = s.withAuthorUsername(book)

		if statuses := filter.Statuses(); len(statuses) > 0 && !slices.Contains(statuses, book.Status) {
			continue
		}

		if filter.Genre() != "" && book.Genre != filter.Genre() {
			continue
		}

		if filter.HasAuthor() && book.AuthorID != filter.AuthorID() {
			continue
		}

		if !filter.MatchesSearch(book.Name, book.AuthorUsername) {
			continue
		}

		books = append(books, book)
	}

	slices.SortFunc(books, compareBooks(filter.Sort()))

	return books, nil
}

// UpdateBook overwrites the name, price, and genre of an existing book.
func (s *Store) UpdateBook(ctx context.Context, book store.BookRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.books[book.ID]
	if !ok {
		return store.ErrNotFound
	}

	existing.Name = book.Name
	existing.Price = book.Price
	existing.Genre = book.Genre
	s.books[book.ID] = existing

	return nil
}

// PlaceOrder marks the ordered book as sold and stores the order, atomically.
// It reports store.ErrConcurrencyConflict when the book is missing or no longer ACTIVE.
func (s *Store) PlaceOrder(ctx context.Context, order store.OrderRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[order.BookID]
	if !ok || book.Status != store.BookStatusActive {
		if s.logger != nil {
			s.logger.Info(logMsgConcurrencyConflict, logAttrBookID, order.BookID.String())
		}

		return store.ErrConcurrencyConflict
	}

	if _, ok := s.users[order.UserID]; !ok {
		return errors.Join(store.ErrExecFailed, fmt.Errorf("memengine: user %s does not exist", order.UserID))
	}

	if _, ok := s.orders[order.ID]; ok {
		return fmt.Errorf("%w: order %s", store.ErrDuplicateKey, order.ID)
	}

	book.Status = store.BookStatusInactive
	s.books[book.ID] = book
	s.orders[order.ID] = order

	return nil
}

// GetOrder returns the order with the given ID or store.ErrNotFound.
func (s *Store) GetOrder(ctx context.Context, orderID uuid.UUID) (store.OrderRecord, error) {
	if err := ctx.Err(); err != nil {
		return store.OrderRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return store.OrderRecord{}, store.ErrNotFound
	}

	return order, nil
}

// QueryOrdersByUser returns the orders placed by a user, oldest first, ties broken by ID.
func (s *Store) QueryOrdersByUser(ctx context.Context, userID uuid.UUID) (store.OrderRecords, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	orders := make(store.OrderRecords, 0)

	for _, order := range s.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}

	slices.SortFunc(orders, func(a, b store.OrderRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return bytes.Compare(a.ID[:], b.ID[:])
	})

	return orders, nil
}

// DeleteOrdersByUser deletes every order placed by a user and returns how many were deleted.
func (s *Store) DeleteOrdersByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64

	for id, order := range s.orders {
		if order.UserID == userID {
			delete(s.orders, id)
			deleted++
		}
	}

	return deleted, nil
}

// withAuthorUsername must be called with the lock held.
func (s *Store) withAuthorUsername(book store.BookRecord) store.BookRecord {
	book.AuthorUsername = s.users[book.AuthorID].Username

	return book
}

func compareBooks(order store.BookSortOrder) func(a, b store.BookRecord) int {
	return func(a, b store.BookRecord) int {
		switch order {
		case store.SortByPriceAsc:
			if a.Price != b.Price {
				return cmp.Compare(a.Price, b.Price)
			}
		case store.SortByPriceDesc:
			if a.Price != b.Price {
				return cmp.Compare(b.Price, a.Price)
			}
		}

		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return bytes.Compare(a.ID[:], b.ID[:])
	}
}
