package createbook

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Decide implements the business rules for listing a book.
//
// Business Rules:
//
//	GIVEN: an authenticated caller
//	WHEN: CreateBook is received
//	THEN: an ACTIVE book authored by the caller is created
//	ERROR: ErrAuthorization for an anonymous caller
//	ERROR: ErrValidation if the name is blank or longer than 60 characters
//	ERROR: ErrValidation if the price is negative
//	ERROR: ErrValidation if the genre is unknown
func Decide(command Command) core.DecisionResult {
	if err := core.RequireAuthenticated(command.Caller); err != nil {
		return core.ErrorDecision(err)
	}

	if err := core.ValidateBookName(command.Name); err != nil {
		return core.ErrorDecision(err)
	}

	if err := core.ValidatePrice(command.Price); err != nil {
		return core.ErrorDecision(err)
	}

	if _, err := core.ParseGenre(string(command.Genre)); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision()
}
