package updateprofile

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Authorize rejects callers that don't own the profile, before anything is read.
func Authorize(command Command) error {
	return core.RequireMyProfile(command.Caller, command.Owner)
}

// Decide implements the business rules for changing a profile.
//
// Business Rules:
//
//	GIVEN: the caller's own profile
//	WHEN: UpdateProfile is received
//	THEN: the patched fields are written
//	ERROR: ErrAuthorization if the profile belongs to someone else
//	ERROR: ErrValidation if the language is not one of en-us, uk, es
//	ERROR: ErrValidation if a text field is too long or the email lacks an "@"
//	IDEMPOTENCY: a patch that changes nothing writes nothing
func Decide(profile core.Profile, command Command) core.DecisionResult {
	if err := core.RequireMyProfile(command.Caller, profile.UserID); err != nil {
		return core.ErrorDecision(err)
	}

	if command.Language != nil {
		if _, err := core.ParseLanguage(string(*command.Language)); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.DisplayName != nil {
		if err := core.ValidateDisplayName(*command.DisplayName); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.Email != nil {
		if err := core.ValidateEmail(*command.Email); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.PhoneNumber != nil {
		if err := core.ValidateContactPhoneNumber(*command.PhoneNumber); err != nil {
			return core.ErrorDecision(err)
		}
	}

	if command.Apply(profile) == profile {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision()
}
