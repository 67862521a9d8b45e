package updateprofile

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const (
	commandType = "UpdateProfile"
)

// Command represents the intent to change a profile. Nil fields are left untouched.
type Command struct {
	Caller      core.UserID
	Owner       core.UserID
	Language    *core.Language
	DisplayName *string
	Email       *string
	PhoneNumber *string
	UpdatedAt   time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided patch.
func BuildCommand(
	caller core.UserID,
	owner core.UserID,
	language *string,
	displayName *string,
	email *string,
	phoneNumber *string,
	updatedAt time.Time,
) Command {
	command := Command{
		Caller:      caller,
		Owner:       owner,
		DisplayName: trimmed(displayName),
		Email:       trimmed(email),
		PhoneNumber: trimmed(phoneNumber),
		UpdatedAt:   core.ToCreatedAt(updatedAt),
	}

	if language != nil {
		normalized := core.Language(strings.ToLower(strings.TrimSpace(*language)))
		command.Language = &normalized
	}

	return command
}

// Apply returns the profile with the patch applied. UpdatedAt is left for the caller to set.
func (c Command) Apply(profile core.Profile) core.Profile {
	if c.Language != nil {
		profile.Language = *c.Language
	}

	if c.DisplayName != nil {
		profile.DisplayName = *c.DisplayName
	}

	if c.Email != nil {
		profile.Email = *c.Email
	}

	if c.PhoneNumber != nil {
		profile.PhoneNumber = *c.PhoneNumber
	}

	return profile
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	t := strings.TrimSpace(*s)

	return &t
}
