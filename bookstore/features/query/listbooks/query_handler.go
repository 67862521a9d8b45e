package listbooks

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

// QueryHandler reads the catalogue. External wrappers handle all observability concerns.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle validates the genre, then reads the matching books.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Catalogue, error) {
	if query.Genre != "" {
		if _, err := core.ParseGenre(string(query.Genre)); err != nil {
			return Catalogue{}, err
		}
	}

	records, err := h.store.QueryBooks(store.WithEventualConsistency(ctx), query.Filter())
	if err != nil {
		return Catalogue{}, err
	}

	books, err := shell.BooksFromRecords(records)
	if err != nil {
		return Catalogue{}, err
	}

	return Catalogue{Books: books}, nil
}
