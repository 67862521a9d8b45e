package createbook_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createbook"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := createbook.NewCommandHandler(bookstore)

	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "frank")
	bookID := fixtures.NewID(t)

	// act
	result, err := handler.Handle(ctx, createbook.BuildCommand(bookID, authorID, "Dune", 10, "FANTASY", clock.Next()))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, int64(1), result.RowsAffected)
	assert.Equal(t, 1, result.RetryAttempts)

	book, err := bookstore.GetBook(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", book.Name)
	assert.Equal(t, int64(10), book.Price)
	assert.Equal(t, "FANTASY", book.Genre)
	assert.Equal(t, store.BookStatusActive, book.Status)
	assert.Equal(t, authorID, book.AuthorID)
	assert.Equal(t, "frank", book.AuthorUsername)
}

func Test_CommandHandler_Handle_InvalidCommand_WritesNothing(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := createbook.NewCommandHandler(bookstore)

	// arrange
	authorID := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "frank")
	bookID := fixtures.NewID(t)

	// act
	_, err := handler.Handle(ctx, createbook.BuildCommand(bookID, authorID, "", 10, "FANTASY", clock.Next()))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = bookstore.GetBook(ctx, bookID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func Test_CommandHandler_Handle_UnregisteredCaller(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := createbook.NewCommandHandler(bookstore)

	// act
	_, err := handler.Handle(ctx, createbook.BuildCommand(fixtures.NewID(t), fixtures.NewID(t), "Dune", 10, "FANTASY", clock.Next()))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorization)
}
