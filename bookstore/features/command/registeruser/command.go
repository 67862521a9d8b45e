package registeruser

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to create a user account and its profile.
type Command struct {
	UserID    core.UserID
	Username  string
	CreatedAt core.CreatedAt
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID core.UserID, username string, createdAt time.Time) Command {
	return Command{
		UserID:    userID,
		Username:  strings.TrimSpace(username),
		CreatedAt: core.ToCreatedAt(createdAt),
	}
}

func (c Command) user() core.User {
	return core.User{
		ID:        c.UserID,
		Username:  c.Username,
		CreatedAt: c.CreatedAt,
	}
}
