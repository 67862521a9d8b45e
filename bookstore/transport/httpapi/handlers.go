package httpapi

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/clearuserorders"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createbook"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createorder"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/registeruser"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/updatebook"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/updateprofile"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/getprofile"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listbooks"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listuserbooks"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listuserorders"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/retrievebook"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/retrieveorder"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/shell"
	"github.com/AntonStoeckl/bookstore/store"
)

// Store is the complete storage contract the API needs. Both storage engines implement it.
type Store interface {
	RegisterUser(ctx context.Context, user store.UserRecord, profile store.ProfileRecord) error
	GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error)
	UpdateProfile(ctx context.Context, profile store.ProfileRecord) error
	InsertBook(ctx context.Context, book store.BookRecord) error
	GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error)
	QueryBooks(ctx context.Context, filter store.BookFilter) (store.BookRecords, error)
	UpdateBook(ctx context.Context, book store.BookRecord) error
	PlaceOrder(ctx context.Context, order store.OrderRecord) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (store.OrderRecord, error)
	QueryOrdersByUser(ctx context.Context, userID uuid.UUID) (store.OrderRecords, error)
	DeleteOrdersByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Handlers holds one handler per use case. Each can be a core handler or an observable wrapper around it.
type Handlers struct {
	RegisterUser    shell.CoreCommandHandler[registeruser.Command]
	UpdateProfile   shell.CoreCommandHandler[updateprofile.Command]
	CreateBook      shell.CoreCommandHandler[createbook.Command]
	UpdateBook      shell.CoreCommandHandler[updatebook.Command]
	CreateOrder     shell.CoreCommandHandler[createorder.Command]
	ClearUserOrders shell.CoreCommandHandler[clearuserorders.Command]

	GetProfile     shell.QueryHandler[getprofile.Query, core.Profile]
	ListBooks      shell.QueryHandler[listbooks.Query, listbooks.Catalogue]
	RetrieveBook   shell.QueryHandler[retrievebook.Query, core.Book]
	ListUserBooks  shell.QueryHandler[listuserbooks.Query, listuserbooks.ListedBooks]
	RetrieveOrder  shell.QueryHandler[retrieveorder.Query, core.Order]
	ListUserOrders shell.QueryHandler[listuserorders.Query, listuserorders.OrderHistory]
}

// NewHandlers creates the core handlers for every use case over one store.
func NewHandlers(s Store, retryOptions ...shell.RetryOption) Handlers {
	return Handlers{
		RegisterUser:    registeruser.NewCommandHandler(s, registeruser.WithRetryOptions(retryOptions...)),
		UpdateProfile:   updateprofile.NewCommandHandler(s, updateprofile.WithRetryOptions(retryOptions...)),
		CreateBook:      createbook.NewCommandHandler(s, createbook.WithRetryOptions(retryOptions...)),
		UpdateBook:      updatebook.NewCommandHandler(s, updatebook.WithRetryOptions(retryOptions...)),
		CreateOrder:     createorder.NewCommandHandler(s, createorder.WithRetryOptions(retryOptions...)),
		ClearUserOrders: clearuserorders.NewCommandHandler(s, clearuserorders.WithRetryOptions(retryOptions...)),

		GetProfile:     getprofile.NewQueryHandler(s),
		ListBooks:      listbooks.NewQueryHandler(s),
		RetrieveBook:   retrievebook.NewQueryHandler(s),
		ListUserBooks:  listuserbooks.NewQueryHandler(s),
		RetrieveOrder:  retrieveorder.NewQueryHandler(s),
		ListUserOrders: listuserorders.NewQueryHandler(s),
	}
}
