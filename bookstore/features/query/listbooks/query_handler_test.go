package listbooks_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listbooks"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store/memengine"
	"github.com/AntonStoeckl/bookstore/testutil/fixtures"
)

func bookIDs(catalogue listbooks.Catalogue) []uuid.UUID {
	ids := make([]uuid.UUID, 0, catalogue.Len())

	for _, book := range catalogue.Books {
		ids = append(ids, book.ID)
	}

	return ids
}

//nolint:funlen
func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	bookstore := memengine.NewStore()
	clock := fixtures.NewClock()
	handler := listbooks.NewQueryHandler(bookstore)

	// arrange
	tolkien := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "tolkien")
	christie := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "christie")
	buyer := fixtures.GivenRegisteredUser(t, ctx, bookstore, clock, "buyer")

	hobbit := fixtures.GivenActiveBook(t, ctx, bookstore, clock, tolkien, "The Hobbit", 20, "FANTASY")
	silmarillion := fixtures.GivenActiveBook(t, ctx, bookstore, clock, tolkien, "The Silmarillion", 35, "FANTASY")
	orientExpress := fixtures.GivenActiveBook(t, ctx, bookstore, clock, christie, "Murder on the Orient Express", 10, "DETECTIVE")
	sold := fixtures.GivenActiveBook(t, ctx, bookstore, clock, christie, "The Hollow", 5, "DETECTIVE")
	fixtures.GivenOrder(t, ctx, bookstore, clock, sold, buyer)

	tests := []struct {
		name  string
		query listbooks.Query
		want  []uuid.UUID
	}{
		{
			name:  "all_active_books_in_creation_order",
			query: listbooks.BuildQuery("", "", ""),
			want:  []uuid.UUID{hobbit, silmarillion, orientExpress},
		},
		{
			name:  "by_genre_ignoring_case",
			query: listbooks.BuildQuery("fantasy", "", ""),
			want:  []uuid.UUID{hobbit, silmarillion},
		},
		{
			name:  "search_in_book_name",
			query: listbooks.BuildQuery("", "ORIENT", ""),
			want:  []uuid.UUID{orientExpress},
		},
		{
			name:  "search_in_author_username",
			query: listbooks.BuildQuery("", "tolk", ""),
			want:  []uuid.UUID{hobbit, silmarillion},
		},
		{
			name:  "sold_books_are_never_listed",
			query: listbooks.BuildQuery("DETECTIVE", "hollow", ""),
			want:  []uuid.UUID{},
		},
		{
			name:  "price_ascending",
			query: listbooks.BuildQuery("", "", "price"),
			want:  []uuid.UUID{orientExpress, hobbit, silmarillion},
		},
		{
			name:  "price_descending",
			query: listbooks.BuildQuery("", "", "-price"),
			want:  []uuid.UUID{silmarillion, hobbit, orientExpress},
		},
		{
			name:  "unknown_ordering_is_ignored",
			query: listbooks.BuildQuery("", "", "name"),
			want:  []uuid.UUID{hobbit, silmarillion, orientExpress},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// act
			catalogue, err := handler.Handle(ctx, tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, tc.want, bookIDs(catalogue))

			for _, book := range catalogue.Books {
				assert.Equal(t, core.BookStatusActive, book.Status)
			}
		})
	}
}

func Test_QueryHandler_Handle_UnknownGenre(t *testing.T) {
	// setup
	handler := listbooks.NewQueryHandler(memengine.NewStore())

	// act
	_, err := handler.Handle(context.Background(), listbooks.BuildQuery("POETRY", "", ""))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
}
