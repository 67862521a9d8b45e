package retrievebook

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	queryType = "RetrieveBook"
)

// Query represents the intent to read one book.
type Query struct {
	Caller core.UserID
	BookID core.BookID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(caller core.UserID, bookID core.BookID) Query {
	return Query{
		Caller: caller,
		BookID: bookID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
