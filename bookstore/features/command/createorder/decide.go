package createorder

import (
	"fmt"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Validate checks everything that can be checked without reading state.
func Validate(command Command) error {
	if err := core.RequireAuthenticated(command.Caller); err != nil {
		return err
	}

	return core.ValidateDeliveryDetails(command.PhoneNumber, command.Country, command.DeliveryAddress)
}

// Decide implements the business rules for buying a book.
//
// Business Rules:
//
//	GIVEN: an existing book
//	WHEN: CreateOrder is received
//	THEN: the book becomes INACTIVE and the order is stored
//	ERROR: ErrSelfPurchase if the caller is the author, whatever the status
//	ERROR: ErrAlreadySold if the book is not ACTIVE
func Decide(book core.Book, command Command) core.DecisionResult {
	if core.IsOwner(command.Caller, book) {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrSelfPurchase, book.ID))
	}

	if !book.IsActive() {
		return core.ErrorDecision(fmt.Errorf("%w: book %s", core.ErrAlreadySold, book.ID))
	}

	return core.SuccessDecision()
}
