package registeruser

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Decide implements the business rules for registering a user.
//
// Business Rules:
//
//	GIVEN: a user ID vouched for by the identity provider
//	WHEN: RegisterUser is received
//	THEN: the user and a profile with the default language are created
//	ERROR: ErrAuthorization for the nil user ID
//	ERROR: ErrValidation if the username is blank or longer than 150 characters
func Decide(command Command) core.DecisionResult {
	if err := core.RequireAuthenticated(command.UserID); err != nil {
		return core.ErrorDecision(err)
	}

	if err := core.ValidateUsername(command.Username); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision()
}
