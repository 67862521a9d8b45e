package listuserbooks

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store"
)

const (
	queryType = "ListUserBooks"
)

// Query represents the intent to read the listings of a user.
type Query struct {
	Caller core.UserID
	Owner  core.UserID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(caller core.UserID, owner core.UserID) Query {
	return Query{
		Caller: caller,
		Owner:  owner,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Filter translates the query into the store's catalogue filter.
func (q Query) Filter() store.BookFilter {
	return store.BuildBookFilter().
		ByAuthor(q.Owner).
		SortedBy(store.SortByCreation).
		Finalize()
}
