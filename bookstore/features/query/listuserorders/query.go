package listuserorders

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	queryType = "ListUserOrders"
)

// Query represents the intent to read the order history of a user.
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
