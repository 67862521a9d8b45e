package core

import (
	"strings"
)

const (
	MaxPhoneNumberLength     = 32
	MaxCountryLength         = 64
	MaxDeliveryAddressLength = 255
)

// Order is the purchase of one book by one user. Orders are never updated.
type Order struct {
	ID              OrderID
	CreatedAt       CreatedAt
	BookID          BookID
	UserID          UserID
	PhoneNumber     string
	Country         string
	DeliveryAddress string
}

// ValidateDeliveryDetails checks that the phone number, country, and delivery address
// are all present and within their length limits.
func ValidateDeliveryDetails(phoneNumber, country, deliveryAddress string) error {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"phone_number", phoneNumber, MaxPhoneNumberLength},
		{"country", country, MaxCountryLength},
		{"delivery_address", deliveryAddress, MaxDeliveryAddressLength},
	}

	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return validationError("%s is required", field.name)
		}

		if err := checkText(field.name, field.value, field.limit); err != nil {
			return err
		}
	}

	return nil
}
