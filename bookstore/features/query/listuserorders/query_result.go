package listuserorders

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// OrderHistory represents the query result containing the orders of a user.
type OrderHistory struct {
	UserID core.UserID
	Orders []core.Order
}

// Len returns the number of orders.
func (h OrderHistory) Len() int {
	return len(h.Orders)
}
