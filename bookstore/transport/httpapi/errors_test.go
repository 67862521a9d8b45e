package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/bookstore/bookstore/shared/core"
	"github.com/AntonStoeckl/bookstore/bookstore/transport/httpapi"
)

func Test_StatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: name", core.ErrValidation), http.StatusBadRequest},
		{core.ErrUsernameTaken, http.StatusBadRequest},
		{fmt.Errorf("%w: private", core.ErrAuthorization), http.StatusForbidden},
		{fmt.Errorf("%w: book", core.ErrNotFound), http.StatusNotFound},
		{core.ErrSelfPurchase, http.StatusMethodNotAllowed},
		{core.ErrAlreadySold, http.StatusConflict},
		{context.DeadlineExceeded, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.want, httpapi.StatusFor(tc.err))
		})
	}
}
