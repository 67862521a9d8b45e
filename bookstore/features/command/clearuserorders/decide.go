package clearuserorders

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

// Decide implements the business rules for clearing an order history.
//
// Business Rules:
//
//	GIVEN: a user with zero or more orders
//	WHEN: ClearUserOrders is received
//	THEN: all orders of that user are deleted
//	ERROR: ErrAuthorization unless the caller is that user
func Decide(command Command) core.DecisionResult {
	if err := core.RequireMyProfile(command.Caller, command.Owner); err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision()
}
