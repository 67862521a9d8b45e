package listuserbooks

import (
	"context"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	QueryBooks(ctx context.Context, filter store.BookFilter) (store.BookRecords, error)
}

// QueryHandler reads the listings of a user. External wrappers handle all observability concerns.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the books of the caller. Asking for somebody else's books is rejected.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ListedBooks, error) {
	if err := core.RequireMyProfile(query.Caller, query.Owner); err != nil {
		return ListedBooks{}, err
	}

	records, err := h.store.QueryBooks(store.WithStrongConsistency(ctx), query.Filter())
	if err != nil {
		return ListedBooks{}, err
	}

	books, err := shell.BooksFromRecords(records)
	if err != nil {
		return ListedBooks{}, err
	}

	return ListedBooks{AuthorID: query.Owner, Books: books}, nil
}
