package httpapi

import (
	"time"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

/***** requests *****/

type registerUserRequest struct {
	Username string `json:"username"`
}

type updateProfileRequest struct {
	Language    *string `json:"language"`
	DisplayName *string `json:"display_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type createBookRequest struct {
	Name  string `json:"name"`
	Price *int64 `json:"price"`
	Genre string `json:"genre"`
}

type updateBookRequest struct {
	Name   *string `json:"name"`
	Price  *int64  `json:"price"`
	Genre  *string `json:"genre"`
	Status *string `json:"status"`
}

type createOrderRequest struct {
	BookID          string `json:"book_id"`
	PhoneNumber     string `json:"phone_number"`
	Country         string `json:"country"`
	DeliveryAddress string `json:"delivery_address"`
}

/***** responses *****/

type errorResponse struct {
	Error string `json:"error"`
}

type bookResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Price          int64     `json:"price"`
	Genre          string    `json:"genre"`
	Status         string    `json:"status"`
	AuthorID       string    `json:"author"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
}

type orderResponse struct {
	ID              string    `json:"id"`
	BookID          string    `json:"book_id"`
	UserID          string    `json:"user_id"`
	PhoneNumber     string    `json:"phone_number"`
	Country         string    `json:"country"`
	DeliveryAddress string    `json:"delivery_address"`
	CreatedAt       time.Time `json:"created_at"`
}

type profileResponse struct {
	UserID      string    `json:"user_id"`
	Language    string    `json:"language"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type clearOrdersResponse struct {
	Deleted int64 `json:"deleted"`
}

func toBookResponse(book core.Book) bookResponse {
	return bookResponse{
		ID:             book.ID.String(),
		Name:           book.Name,
		Price:          book.Price,
		Genre:          string(book.Genre),
		Status:         string(book.Status),
		AuthorID:       book.AuthorID.String(),
		AuthorUsername: book.AuthorUsername,
		CreatedAt:      book.CreatedAt,
	}
}

func toBookResponses(books []core.Book) []bookResponse {
	responses := make([]bookResponse, 0, len(books))

	for _, book := range books {
		responses = append(responses, toBookResponse(book))
	}

	return responses
}

func toOrderResponse(order core.Order) orderResponse {
	return orderResponse{
		ID:              order.ID.String(),
		BookID:          order.BookID.String(),
		UserID:          order.UserID.String(),
		PhoneNumber:     order.PhoneNumber,
		Country:         order.Country,
		DeliveryAddress: order.DeliveryAddress,
		CreatedAt:       order.CreatedAt,
	}
}

func toOrderResponses(orders []core.Order) []orderResponse {
	responses := make([]orderResponse, 0, len(orders))

	for _, order := range orders {
		responses = append(responses, toOrderResponse(order))
	}

	return responses
}

func toProfileResponse(profile core.Profile) profileResponse {
	return profileResponse{
		UserID:      profile.UserID.String(),
		Language:    string(profile.Language),
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		PhoneNumber: profile.PhoneNumber,
		UpdatedAt:   profile.UpdatedAt,
	}
}
