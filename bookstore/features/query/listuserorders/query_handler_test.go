package listuserorders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listuserorders"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func Test_QueryHandler_Handle_ReturnsOwnOrdersOldestFirst(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := listuserorders.NewQueryHandler(bookstore)

	// arrange
	seller := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "seller")
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	other := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "other")

	firstBook := fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "One", 1, "ADVENTURE")
	secondBook := fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "Two", 2, "ADVENTURE")
	thirdBook := fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "Three", 3, "ADVENTURE")

	firstOrder := fixtures.GivenOrder(t, ctx, bookstore, clock, firstBook, me)
	fixtures.GivenOrder(t, ctx, bookstore, clock, secondBook, other)
	thirdOrder := fixtures.GivenOrder(t, ctx, bookstore, clock, thirdBook, me)

	// act
	history, err := handler.Handle(ctx, listuserorders.BuildQuery(me, me))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, history.Len())
	assert.Equal(t, firstOrder, history.Orders[0].ID)
	assert.Equal(t, thirdOrder, history.Orders[1].ID)
}

func Test_QueryHandler_Handle_EmptyHistory(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	handler := listuserorders.NewQueryHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, fixtures.NewClock(), "me")

	// act
	history, err := handler.Handle(ctx, listuserorders.BuildQuery(me, me))

	// assert
	require.NoError(t, err)
	assert.Zero(t, history.Len())
}

func Test_QueryHandler_Handle_ForeignOrdersAreRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := listuserorders.NewQueryHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	other := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "other")

	// act
	_, err := handler.Handle(ctx, listuserorders.BuildQuery(me, other))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorization)
}
