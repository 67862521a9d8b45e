package retrievebook

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error)
}

// QueryHandler reads a single book. External wrappers handle all observability concerns.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the book or core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Book, error) {
	if err := core.RequireAuthenticated(query.Caller); err != nil {
		return core.Book{}, err
	}

	record, err := h.store.GetBook(store.WithStrongConsistency(ctx), query.BookID)
	if err != nil {
		return core.Book{}, shell.TranslateStoreError(err, fmt.Sprintf("book %s", query.BookID))
	}

	return shell.BookFromRecord(record)
}
