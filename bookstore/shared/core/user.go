package core

import "strings"

// MaxUsernameLength is the maximum number of characters of a username.
const MaxUsernameLength = 150

// User is a registered account.
type User struct {
	ID        UserID
	Username  string
	CreatedAt CreatedAt
}

// ValidateUsername checks that a username is non-blank and not too long.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return validationError("username must not be blank")
	}

	return checkText("username", username, MaxUsernameLength)
}
