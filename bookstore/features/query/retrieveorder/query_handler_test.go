package retrieveorder_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/query/retrieveorder"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func Test_QueryHandler_Handle_ReturnsTheOrder(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := retrieveorder.NewQueryHandler(bookstore)

	// arrange
	seller := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "seller")
	buyer := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "buyer")
	bookID := fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "Foo", 5, "THRILLER")
	orderID := fixtures.GivenOrder(t, ctx, bookstore, clock, bookID, buyer)

	// act
	order, err := handler.Handle(ctx, retrieveorder.BuildQuery(buyer, orderID))

	// assert
	require.NoError(t, err)
	assert.Equal(t, orderID, order.ID)
	assert.Equal(t, bookID, order.BookID)
	assert.Equal(t, buyer, order.UserID)
	assert.Equal(t, "US", order.Country)
}

func Test_QueryHandler_Handle_Errors(t *testing.T) {
	handler := retrieveorder.NewQueryHandler(memengine.NewStore())

	t.Run("unknown_order", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), retrieveorder.BuildQuery(uuid.New(), uuid.New()))

		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("anonymous_caller", func(t *testing.T) {
		_, err := handler.Handle(context.Background(), retrieveorder.BuildQuery(uuid.Nil, uuid.New()))

		assert.ErrorIs(t, err, core.ErrAuthorization)
	})
}
