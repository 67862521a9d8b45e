package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
)

const msgInternalError = "internal server error"

// StatusFor maps an error returned by a handler onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrSelfPurchase):
		return http.StatusMethodNotAllowed
	case errors.Is(err, core.ErrAlreadySold):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Details of unexpected errors are logged, never sent.
func (a *api) writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		a.logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)

		message = msgInternalError
	}

	abortWithError(c, status, message)
}

func abortWithError(c *gin.Context, status int, message string) {
	writeJSON(c, status, errorResponse{Error: message})
	c.Abort()
}
