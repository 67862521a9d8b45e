package retrieveorder

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
	GetOrder(ctx context.Context, orderID uuid.UUID) (store.OrderRecord, error)
}

// QueryHandler reads a single order. External wrappers handle all observability concerns.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the order or core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Order, error) {
	if err := core.RequireAuthenticated(query.Caller); err != nil {
		return core.Order{}, err
	}

	record, err := h.store.GetOrder(store.WithStrongConsistency(ctx), query.OrderID)
	if err != nil {
		return core.Order{}, shell.TranslateStoreError(err, fmt.Sprintf("order %s", query.OrderID))
	}

	return shell.OrderFromRecord(record), nil
}
