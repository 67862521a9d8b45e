package createorder

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	commandType = "CreateOrder"
)

// Command represents the intent to buy a book.
type Command struct {
	OrderID         core.OrderID
	BookID          core.BookID
	Caller          core.UserID
	PhoneNumber     string
	Country         string
	DeliveryAddress string
	CreatedAt       core.CreatedAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	orderID core.OrderID,
	bookID core.BookID,
	caller core.UserID,
	phoneNumber string,
	country string,
	deliveryAddress string,
	createdAt time.Time,
) Command {
	return Command{
		OrderID:         orderID,
		BookID:          bookID,
		Caller:          caller,
		PhoneNumber:     strings.TrimSpace(phoneNumber),
		Country:         strings.TrimSpace(country),
		DeliveryAddress: strings.TrimSpace(deliveryAddress),
		CreatedAt:       core.ToCreatedAt(createdAt),
	}
}

func (c Command) order() core.Order {
	return core.Order{
		ID:              c.OrderID,
		CreatedAt:       c.CreatedAt,
		BookID:          c.BookID,
		UserID:          c.Caller,
		PhoneNumber:     c.PhoneNumber,
		Country:         c.Country,
		DeliveryAddress: c.DeliveryAddress,
	}
}
