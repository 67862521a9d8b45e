package core

import (
	"strings"
	"time"
)

const (
	MaxDisplayNameLength = 100
	MaxEmailLength       = 254
)

// Language is the preferred interface language of a user.
type Language string

const (
	LanguageEnglish   Language = "en-us"
	LanguageUkrainian Language = "uk"
	LanguageSpanish   Language = "es"

	// DefaultLanguage is assigned to every new profile.
	DefaultLanguage = LanguageSpanish
)

// ParseLanguage returns the language named by s.
func ParseLanguage(s string) (Language, error) {
	switch language := Language(strings.ToLower(strings.TrimSpace(s))); language {
	case LanguageEnglish, LanguageUkrainian, LanguageSpanish:
		return language, nil
	default:
		return "", validationError("language %q is not one of en-us, uk, es", s)
	}
}

// Profile holds a user's preferences and contact details. It is keyed by the user.
type Profile struct {
	UserID      UserID
	Language    Language
	DisplayName string
	Email       string
	PhoneNumber string
	UpdatedAt   time.Time
}

// NewDefaultProfile returns the profile every user starts with.
func NewDefaultProfile(userID UserID, createdAt time.Time) Profile {
	return Profile{
		UserID:    userID,
		Language:  DefaultLanguage,
		UpdatedAt: createdAt,
	}
}

// ValidateDisplayName checks the length of a display name. Empty is allowed.
func ValidateDisplayName(displayName string) error {
	return checkText("display_name", displayName, MaxDisplayNameLength)
}

// ValidateEmail checks the length of an email address and that it contains an "@". Empty is allowed.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}

	if err := checkText("email", email, MaxEmailLength); err != nil {
		return err
	}

	if !strings.Contains(email, "@") {
		return validationError("email %q is not an email address", email)
	}

	return nil
}

// ValidateContactPhoneNumber checks the length of a profile phone number. Empty is allowed.
func ValidateContactPhoneNumber(phoneNumber string) error {
	return checkText("phone_number", phoneNumber, MaxPhoneNumberLength)
}
