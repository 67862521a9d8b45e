package listuserorders

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	QueryOrdersByUser(ctx context.Context, userID uuid.UUID) (store.OrderRecords, error)
}

// QueryHandler reads the order history of a user. External wrappers handle all observability concerns.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the orders of the caller. Asking for somebody else's orders is rejected.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OrderHistory, error) {
	if err := core.RequireMyProfile(query.Caller, query.Owner); err != nil {
		return OrderHistory{}, err
	}

	records, err := h.store.QueryOrdersByUser(store.WithStrongConsistency(ctx), query.Owner)
	if err != nil {
		return OrderHistory{}, err
	}

	return OrderHistory{UserID: query.Owner, Orders: shell.OrdersFromRecords(records)}, nil
}
