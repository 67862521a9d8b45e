package getprofile

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
	GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error)
}

// QueryHandler reads a profile. External wrappers handle all observability concerns.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the profile of the caller or core.ErrNotFound.
func (h QueryHandler) Handle(ctx context.Context, query Query) (core.Profile, error) {
	if err := core.RequireMyProfile(query.Caller, query.Owner); err != nil {
		return core.Profile{}, err
	}

	record, err := h.store.GetProfile(store.WithStrongConsistency(ctx), query.Owner)
	if err != nil {
		return core.Profile{}, shell.TranslateStoreError(err, fmt.Sprintf("profile of user %s", query.Owner))
	}

	return shell.ProfileFromRecord(record)
}
