package store_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/bookstore/store"
)

//nolint:funlen
func Test_BookFilterBuilder(t *testing.T) {
	authorID := uuid.New()

	tests := []struct {
		name     string
		build    func() store.BookFilter
		validate func(t *testing.T, filter store.BookFilter)
	}{
		{
			name: "empty_filter_matches_everything",
			build: func() store.BookFilter {
				return store.BuildBookFilter().Finalize()
			},
			validate: func(t *testing.T, f store.BookFilter) {
				assert.Empty(t, f.Statuses())
				assert.Empty(t, f.Genre())
				assert.False(t, f.HasAuthor())
				assert.Empty(t, f.Search())
				assert.Equal(t, store.SortByCreation, f.Sort())
			},
		},
		{
			name: "statuses_are_sanitized",
			build: func() store.BookFilter {
				return store.BuildBookFilter().
					WithStatus(store.BookStatusInactive, "", store.BookStatusActive, store.BookStatusInactive).
					Finalize()
			},
			validate: func(t *testing.T, f store.BookFilter) {
				assert.Equal(t, []string{store.BookStatusActive, store.BookStatusInactive}, f.Statuses())
			},
		},
		{
			name: "genre_search_and_author",
			build: func() store.BookFilter {
				return store.BuildBookFilter().
					WithGenre(" FANTASY ").
					Searching("  Ring ").
					ByAuthor(authorID).
					Finalize()
			},
			validate: func(t *testing.T, f store.BookFilter) {
				assert.Equal(t, "FANTASY", f.Genre())
				assert.Equal(t, "Ring", f.Search())
				assert.True(t, f.HasAuthor())
				assert.Equal(t, authorID, f.AuthorID())
			},
		},
		{
			name: "price_descending",
			build: func() store.BookFilter {
				return store.BuildBookFilter().SortedBy(store.SortByPriceDesc).Finalize()
			},
			validate: func(t *testing.T, f store.BookFilter) {
				assert.Equal(t, store.SortByPriceDesc, f.Sort())
			},
		},
		{
			name: "unknown_sort_falls_back_to_creation",
			build: func() store.BookFilter {
				return store.BuildBookFilter().SortedBy("name").Finalize()
			},
			validate: func(t *testing.T, f store.BookFilter) {
				assert.Equal(t, store.SortByCreation, f.Sort())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.build())
		})
	}
}

func Test_BookFilter_MatchesSearch(t *testing.T) {
	// arrange
	filter := store.BuildBookFilter().Searching("tolk").Finalize()

	// act & assert
	assert.True(t, filter.MatchesSearch("The Hobbit", "J.R.R. Tolkien"))
	assert.True(t, filter.MatchesSearch("TOLKIEN letters", "someone"))
	assert.False(t, filter.MatchesSearch("Dune", "frank"))
	assert.True(t, store.BuildBookFilter().Finalize().MatchesSearch("anything"))
}

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	ctx := t.Context()

	assert.Equal(t, store.StrongConsistency, store.GetConsistencyLevel(ctx))
	assert.Equal(t, store.EventualConsistency, store.GetConsistencyLevel(store.WithEventualConsistency(ctx)))
	assert.Equal(t, store.StrongConsistency, store.GetConsistencyLevel(store.WithStrongConsistency(ctx)))
	assert.Equal(t, "eventual", store.EventualConsistency.String())
}
