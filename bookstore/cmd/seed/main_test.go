package main

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/memengine"
)

func Test_Seed(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	s := newSeeder(bookstore, rand.New(rand.NewPCG(1, 2)), slog.New(slog.NewTextHandler(io.Discard, nil)))

	// act
	stats, err := s.seed(ctx, 5, 3, 50)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 5, stats.users)
	assert.Equal(t, 15, stats.books)

	all, err := bookstore.QueryBooks(ctx, store.BuildBookFilter().Finalize())
	require.NoError(t, err)
	assert.Len(t, all, 15)

	sold, err := bookstore.QueryBooks(ctx, store.BuildBookFilter().WithStatus(store.BookStatusInactive).Finalize())
	require.NoError(t, err)
	assert.Len(t, sold, stats.orders, "every order sells exactly one book")

	for _, book := range sold {
		assert.NotEmpty(t, book.AuthorUsername)
	}
}

func Test_Seed_SingleUserPlacesNoOrders(t *testing.T) {
	// setup
	ctx := context.Background()
	s := newSeeder(memengine.NewStore(), rand.New(rand.NewPCG(1, 2)), slog.New(slog.NewTextHandler(io.Discard, nil)))

	// act
	stats, err := s.seed(ctx, 1, 4, 100)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 4, stats.books)
	assert.Zero(t, stats.orders)
}
