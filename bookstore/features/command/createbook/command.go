package createbook

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	commandType = "CreateBook"
)

// Command represents the intent to list a new book for sale.
type Command struct {
	BookID    core.BookID
	Caller    core.UserID
	Name      string
	Price     int64
	Genre     core.Genre
	CreatedAt core.CreatedAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
// The genre is normalized here and validated by Decide.
func BuildCommand(
	bookID core.BookID,
	caller core.UserID,
	name string,
	price int64,
	genre string,
	createdAt time.Time,
) Command {
	return Command{
		BookID:    bookID,
		Caller:    caller,
		Name:      strings.TrimSpace(name),
		Price:     price,
		Genre:     core.Genre(strings.ToUpper(strings.TrimSpace(genre))),
		CreatedAt: core.ToCreatedAt(createdAt),
	}
}

func (c Command) book() core.Book {
	return core.Book{
		ID:        c.BookID,
		Name:      c.Name,
		Price:     c.Price,
		Genre:     c.Genre,
		Status:    core.BookStatusActive,
		AuthorID:  c.Caller,
		CreatedAt: c.CreatedAt,
	}
}
