package updatebook

import (
	"strings"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	commandType = "UpdateBook"
)

// Command represents the intent to change a listed book. Nil fields are left untouched.
type Command struct {
	BookID core.BookID
	Caller core.UserID
	Name   *string
	Price  *int64
	Genre  *core.Genre
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided patch.
func BuildCommand(bookID core.BookID, caller core.UserID, name *string, price *int64, genre *string) Command {
	command := Command{
		BookID: bookID,
		Caller: caller,
		Price:  price,
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		command.Name = &trimmed
	}

	if genre != nil {
		normalized := core.Genre(strings.ToUpper(strings.TrimSpace(*genre)))
		command.Genre = &normalized
	}

	return command
}

// Apply returns the book with the patch applied.
func (c Command) Apply(book core.Book) core.Book {
	if c.Name != nil {
		book.Name = *c.Name
	}

	if c.Price != nil {
		book.Price = *c.Price
	}

	if c.Genre != nil {
		book.Genre = *c.Genre
	}

	return book
}
