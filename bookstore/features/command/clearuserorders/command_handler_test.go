package clearuserorders_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/clearuserorders"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func Test_CommandHandler_Handle_DeletesOnlyTheCallersOrders(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := clearuserorders.NewCommandHandler(bookstore)

	// arrange
	seller := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "seller")
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	other := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "other")

	bookIDs := []uuid.UUID{
		fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "One", 1, "ROMANCE"),
		fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "Two", 2, "ROMANCE"),
		fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "Three", 3, "ROMANCE"),
	}

	fixtures.GivenOrder(t, ctx, bookstore, clock, bookIDs[0], me)
	fixtures.GivenOrder(t, ctx, bookstore, clock, bookIDs[1], me)
	othersOrder := fixtures.GivenOrder(t, ctx, bookstore, clock, bookIDs[2], other)

	// act
	result, err := handler.Handle(ctx, clearuserorders.BuildCommand(me, me))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, int64(2), result.RowsAffected)

	mine, err := bookstore.QueryOrdersByUser(ctx, me)
	require.NoError(t, err)
	assert.Empty(t, mine)

	_, err = bookstore.GetOrder(ctx, othersOrder)
	assert.NoError(t, err)

	for _, bookID := range bookIDs {
		book, getErr := bookstore.GetBook(ctx, bookID)
		require.NoError(t, getErr)
		assert.Equal(t, store.BookStatusInactive, book.Status, "sold books stay sold")
	}
}

func Test_CommandHandler_Handle_EmptyHistoryIsIdempotent(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := clearuserorders.NewCommandHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")

	// act
	result, err := handler.Handle(ctx, clearuserorders.BuildCommand(me, me))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Zero(t, result.RowsAffected)
}

func Test_CommandHandler_Handle_ForeignHistoryIsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := clearuserorders.NewCommandHandler(bookstore)

	// arrange
	seller := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "seller")
	victim := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "victim")
	attacker := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "attacker")
	bookID := fixtures.GivenActiveBook(t, ctx, bookstore, clock, seller, "One", 1, "ROMANCE")
	orderID := fixtures.GivenOrder(t, ctx, bookstore, clock, bookID, victim)

	// act
	_, err := handler.Handle(ctx, clearuserorders.BuildCommand(attacker, victim))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorization)

	_, err = bookstore.GetOrder(ctx, orderID)
	assert.NoError(t, err)
}
