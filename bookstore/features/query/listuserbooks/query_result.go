package listuserbooks

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// ListedBooks represents the query result containing all books listed by a user.
type ListedBooks struct {
	AuthorID core.UserID
	Books    []core.Book
}

// Len returns the number of listed books.
func (l ListedBooks) Len() int {
	return len(l.Books)
}
