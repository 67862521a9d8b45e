package clearuserorders

import (
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	commandType = "ClearUserOrders"
)

// Command represents the intent to delete every order of a user.
type Command struct {
	Caller core.UserID
	Owner  core.UserID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(caller core.UserID, owner core.UserID) Command {
	return Command{
		Caller: caller,
		Owner:  owner,
	}
}
