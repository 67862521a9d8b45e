package updateprofile_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/updateprofile"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := updateprofile.NewCommandHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	updatedAt := clock.Next()

	// act
	result, err := handler.Handle(ctx, updateprofile.BuildCommand(
		me, me, ptr("uk"), ptr("Me"), ptr("me@example.com"), ptr("+380 44 000"), updatedAt,
	))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	profile, err := bookstore.GetProfile(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, "uk", profile.Language)
	assert.Equal(t, "Me", profile.DisplayName)
	assert.Equal(t, "me@example.com", profile.Email)
	assert.Equal(t, "+380 44 000", profile.PhoneNumber)
	assert.True(t, updatedAt.Equal(profile.UpdatedAt))
}

func Test_CommandHandler_Handle_UnchangedProfileIsIdempotent(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := updateprofile.NewCommandHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	before, err := bookstore.GetProfile(ctx, me)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, updateprofile.BuildCommand(me, me, ptr("es"), nil, nil, nil, clock.Next()))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)

	after, err := bookstore.GetProfile(ctx, me)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func Test_CommandHandler_Handle_ForeignProfileIsRejected(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := updateprofile.NewCommandHandler(bookstore)

	// arrange
	me := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "me")
	other := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "other")

	// act
	_, err := handler.Handle(ctx, updateprofile.BuildCommand(me, other, ptr("uk"), nil, nil, nil, clock.Next()))

	// assert
	assert.ErrorIs(t, err, core.ErrAuthorization)

	profile, err := bookstore.GetProfile(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "es", profile.Language)
}

func Test_CommandHandler_Handle_MissingProfile(t *testing.T) {
	// setup
	ctx := context.Background()
	handler := updateprofile.NewCommandHandler(memengine.NewStore())

	// arrange
	me := fixtures.NewID(t)

	// act
	_, err := handler.Handle(ctx, updateprofile.BuildCommand(me, me, ptr("uk"), nil, nil, nil, fixtures.NewClock().Next()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
