package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/clearuserorders"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/createorder"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/listuserorders"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/retrieveorder"
)

func (a *api) createOrder(c *gin.Context) {
	var request createOrderRequest
	if err := bindJSON(c, &request); err != nil {
		a.writeError(c, err)
		return
	}

	bookID, err := parseID(request.BookID, "book_id")
	if err != nil {
		a.writeError(c, err)
		return
	}

	orderID, err := a.newID()
	if err != nil {
		a.writeError(c, err)
		return
	}

	caller := callerFrom(c)
	command := createorder.BuildCommand(
		orderID,
		bookID,
		caller,
		request.PhoneNumber,
		request.Country,
		request.DeliveryAddress,
		a.now(),
	)

	if _, err = a.handlers.CreateOrder.Handle(c.Request.Context(), command); err != nil {
		a.writeError(c, err)
		return
	}

	a.respondWithOrder(c, http.StatusCreated, retrieveorder.BuildQuery(caller, orderID))
}

func (a *api) retrieveOrder(c *gin.Context) {
	orderID, err := parseID(c.Param("id"), "order id")
	if err != nil {
		a.writeError(c, err)
		return
	}

	a.respondWithOrder(c, http.StatusOK, retrieveorder.BuildQuery(callerFrom(c), orderID))
}

func (a *api) listUserOrders(c *gin.Context) {
	caller := callerFrom(c)

	history, err := a.handlers.ListUserOrders.Handle(c.Request.Context(), listuserorders.BuildQuery(caller, caller))
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, toOrderResponses(history.Orders))
}

func (a *api) clearUserOrders(c *gin.Context) {
	caller := callerFrom(c)

	result, err := a.handlers.ClearUserOrders.Handle(c.Request.Context(), clearuserorders.BuildCommand(caller, caller))
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, clearOrdersResponse{Deleted: result.RowsAffected})
}

func (a *api) respondWithOrder(c *gin.Context, status int, query retrieveorder.Query) {
	order, err := a.handlers.RetrieveOrder.Handle(c.Request.Context(), query)
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, status, toOrderResponse(order))
}
