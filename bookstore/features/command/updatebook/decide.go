package updatebook

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Decide implements the business rules for changing a book.
//
// Business Rules:
//
//	GIVEN: an existing book
//	WHEN: UpdateBook is received
//	THEN: the patched name, price, and genre are written
//	ERROR: ErrAuthorization if the caller is not the author
//	ERROR: ErrValidation if a patched field is invalid
//	IDEMPOTENCY: a patch that changes nothing writes nothing
func Decide(book core.Book, command Command) core.DecisionResult {
	if err := core.RequireOwner(command.Caller, book); err != nil {
		return core.ErrorDecision(err)
	}

	if command.Name != nil {
		if err := core.ValidateBookName(*command.Name); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.Price != nil {
		if err := core.ValidatePrice(*command.Price); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.Genre != nil {
		if _, err := core.ParseGenre(string(*command.Genre)); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.Apply(book) == book {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision()
}
