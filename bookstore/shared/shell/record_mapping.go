package shell

import (
	"errors"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/store"
)

// BookFromRecord converts a stored book into the domain Book.
func BookFromRecord(record store.BookRecord) (core.Book, error) {
	genre, err := core.ParseGenre(record.Genre)
	if err != nil {
		return core.Book{}, errors.Join(ErrInvalidRecord, err)
	}

	status, err := core.ParseBookStatus(record.Status)
	if err != nil {
		return core.Book{}, errors.Join(ErrInvalidRecord, err)
	}

	return core.Book{
		ID:             record.ID,
		Name:           record.Name,
		Price:          record.Price,
		Genre:          genre,
		Status:         status,
		AuthorID:       record.AuthorID,
		AuthorUsername: record.AuthorUsername,
		CreatedAt:      core.ToCreatedAt(record.CreatedAt),
	}, nil
}

// BooksFromRecords converts stored books into domain Books, keeping their order.
func BooksFromRecords(records store.BookRecords) ([]core.Book, error) {
	books := make([]core.Book, 0, len(records))

	for _, record := range records {
		book, err := BookFromRecord(record)
		if err != nil {
			return nil, err
		}

		books = append(books, book)
	}

	return books, nil
}

// RecordFromBook converts a domain Book into its persisted form.
func RecordFromBook(book core.Book) store.BookRecord {
	return store.BookRecord{
		ID:             book.ID,
		Name:           book.Name,
		Price:          book.Price,
		Genre:          string(book.Genre),
		Status:         string(book.Status),
		AuthorID:       book.AuthorID,
		AuthorUsername: book.AuthorUsername,
		CreatedAt:      book.CreatedAt,
	}
}

// OrderFromRecord converts a stored order into the domain Order.
func OrderFromRecord(record store.OrderRecord) core.Order {
	return core.Order{
		ID:              record.ID,
		CreatedAt:       core.ToCreatedAt(record.CreatedAt),
		BookID:          record.BookID,
		UserID:          record.UserID,
		PhoneNumber:     record.PhoneNumber,
		Country:         record.Country,
		DeliveryAddress: record.DeliveryAddress,
	}
}

// OrdersFromRecords converts stored orders into domain Orders, keeping their order.
func OrdersFromRecords(records store.OrderRecords) []core.Order {
	orders := make([]core.Order, 0, len(records))

	for _, record := range records {
		orders = append(orders, OrderFromRecord(record))
	}

	return orders
}

// RecordFromOrder converts a domain Order into its persisted form.
func RecordFromOrder(order core.Order) store.OrderRecord {
	return store.OrderRecord{
		ID:              order.ID,
		CreatedAt:       order.CreatedAt,
		BookID:          order.BookID,
		UserID:          order.UserID,
		PhoneNumber:     order.PhoneNumber,
		Country:         order.Country,
		DeliveryAddress: order.DeliveryAddress,
	}
}

// ProfileFromRecord converts a stored profile into the domain Profile.
func ProfileFromRecord(record store.ProfileRecord) (core.Profile, error) {
	language, err := core.ParseLanguage(record.Language)
	if err != nil {
		return core.Profile{}, errors.Join(ErrInvalidRecord, err)
	}

	return core.Profile{
		UserID:      record.UserID,
		Language:    language,
		DisplayName: record.DisplayName,
		Email:       record.Email,
		PhoneNumber: record.PhoneNumber,
		UpdatedAt:   core.ToCreatedAt(record.UpdatedAt),
	}, nil
}

// RecordFromProfile converts a domain Profile into its persisted form.
func RecordFromProfile(profile core.Profile) store.ProfileRecord {
	return store.ProfileRecord{
		UserID:      profile.UserID,
		Language:    string(profile.Language),
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		PhoneNumber: profile.PhoneNumber,
		UpdatedAt:   profile.UpdatedAt,
	}
}

// RecordFromUser converts a domain User into its persisted form.
func RecordFromUser(user core.User) store.UserRecord {
	return store.UserRecord{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
