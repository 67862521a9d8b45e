package listbooks

import (
	"strings"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store"
)

const (
	queryType = "ListBooks"
)

// Query represents the intent to browse the catalogue. Empty fields don't restrict the result.
type Query struct {
	Genre  core.Genre
	Search string
	Sort   store.BookSortOrder
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(genre string, search string, sort string) Query {
	return Query{
		Genre:  core.Genre(strings.ToUpper(strings.TrimSpace(genre))),
		Search: strings.TrimSpace(search),
		Sort:   store.BookSortOrder(strings.TrimSpace(sort)),
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Filter translates the query into the store's catalogue filter.
func (q Query) Filter() store.BookFilter {
	return store.BuildBookFilter().
		WithStatus(store.BookStatusActive).
		WithGenre(string(q.Genre)).
		Searching(q.Search).
		SortedBy(q.Sort).
		Finalize()
}
