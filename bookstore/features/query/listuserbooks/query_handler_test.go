package listuserbooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listuserbooks"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func Test_QueryHandler_Handle_ReturnsOwnBooksInAnyStatus(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := listuserbooks.NewQueryHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	other := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "other")

	first := fixtures.GivenActiveBook(t, ctx, bookstore, clock, me, "First", 1, "ROMANCE")
	second := fixtures.GivenActiveBook(t, ctx, bookstore, clock, me, "Second", 2, "HISTORICAL")
	fixtures.GivenActiveBook(t, ctx, bookstore, clock, other, "Not mine", 3, "ROMANCE")
	fixtures.GivenOrder(t, ctx, bookstore, clock, first, other)

	// act
	result, err := handler.Handle(ctx, listuserbooks.BuildQuery(me, me))

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, result.Len())
	assert.Equal(t, me, result.AuthorID)
	assert.Equal(t, first, result.Books[0].ID)
	assert.Equal(t, core.BookStatusInactive, result.Books[0].Status)
	assert.Equal(t, second, result.Books[1].ID)
	assert.Equal(t, core.BookStatusActive, result.Books[1].Status)
}

func Test_QueryHandler_Handle_ForeignBooksAreRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := listuserbooks.NewQueryHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	other := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "other")

	// act
	_, err := handler.Handle(ctx, listuserbooks.BuildQuery(me, other))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorization)
}
