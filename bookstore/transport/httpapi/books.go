package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createbook"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/updatebook"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listbooks"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listuserbooks"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/retrievebook"
	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

func (a *api) listBooks(c *gin.Context) {
	query := listbooks.BuildQuery(c.Query("genre"), c.Query("search"), c.Query("ordering"))

	catalogue, err := a.handlers.ListBooks.Handle(c.Request.Context(), query)
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, toBookResponses(catalogue.Books))
}

func (a *api) createBook(c *gin.Context) {
	var request createBookRequest
	if err := bindJSON(c, &request); err != nil {
		a.writeError(c, err)
		return
	}

	if request.Price == nil {
		a.writeError(c, fmt.Errorf("%w: price is required", core.ErrValidation))
		return
	}

	bookID, err := a.newID()
	if err != nil {
		a.writeError(c, err)
		return
	}

	caller := callerFrom(c)
	command := createbook.BuildCommand(bookID, caller, request.Name, *request.Price, request.Genre, a.now())

	if _, err = a.handlers.CreateBook.Handle(c.Request.Context(), command); err != nil {
		a.writeError(c, err)
		return
	}

	a.respondWithBook(c, http.StatusCreated, retrievebook.BuildQuery(caller, bookID))
}

func (a *api) retrieveBook(c *gin.Context) {
	bookID, err := parseID(c.Param("id"), "book id")
	if err != nil {
		a.writeError(c, err)
		return
	}

	a.respondWithBook(c, http.StatusOK, retrievebook.BuildQuery(callerFrom(c), bookID))
}

func (a *api) updateBook(c *gin.Context) {
	bookID, err := parseID(c.Param("id"), "book id")
	if err != nil {
		a.writeError(c, err)
		return
	}

	var request updateBookRequest
	if err = bindJSON(c, &request); err != nil {
		a.writeError(c, err)
		return
	}

	if request.Status != nil {
		a.writeError(c, fmt.Errorf("%w: status can't be changed directly", core.ErrValidation))
		return
	}

	caller := callerFrom(c)
	command := updatebook.BuildCommand(bookID, caller, request.Name, request.Price, request.Genre)

	if _, err = a.handlers.UpdateBook.Handle(c.Request.Context(), command); err != nil {
		a.writeError(c, err)
		return
	}

	a.respondWithBook(c, http.StatusOK, retrievebook.BuildQuery(caller, bookID))
}

func (a *api) listUserBooks(c *gin.Context) {
	caller := callerFrom(c)

	listed, err := a.handlers.ListUserBooks.Handle(c.Request.Context(), listuserbooks.BuildQuery(caller, caller))
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, toBookResponses(listed.Books))
}

func (a *api) respondWithBook(c *gin.Context, status int, query retrievebook.Query) {
	book, err := a.handlers.RetrieveBook.Handle(c.Request.Context(), query)
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, status, toBookResponse(book))
}
