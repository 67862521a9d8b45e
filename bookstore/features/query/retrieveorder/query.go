package retrieveorder

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	queryType = "RetrieveOrder"
)

// Query represents the intent to read one order.
type Query struct {
	Caller  core.UserID
	OrderID core.OrderID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(caller core.UserID, orderID core.OrderID) Query {
	return Query{
		Caller:  caller,
		OrderID: orderID,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
