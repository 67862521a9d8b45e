package listbooks

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Catalogue represents the query result containing the matching ACTIVE books.
type Catalogue struct {
	Books []core.Book
}

// Len returns the number of books in the catalogue.
func (c Catalogue) Len() int {
	return len(c.Books)
}
