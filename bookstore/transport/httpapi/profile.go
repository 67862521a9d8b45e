package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/bookstore/bookstore/features/command/registeruser"
	"github.com/AntonStoeckl/bookstore/bookstore/features/command/updateprofile"
	"github.com/AntonStoeckl/bookstore/bookstore/features/query/getprofile"
)

// registerUser creates the account of the token's subject. Repeating it answers 200 instead of 201.
func (a *api) registerUser(c *gin.Context) {
	var request registerUserRequest
	if err := bindJSON(c, &request); err != nil {
		a.writeError(c, err)
		return
	}

	caller := callerFrom(c)

	result, err := a.handlers.RegisterUser.Handle(c.Request.Context(), registeruser.BuildCommand(caller, request.Username, a.now()))
	if err != nil {
		a.writeError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}

	a.respondWithProfile(c, status, getprofile.BuildQuery(caller, caller))
}

func (a *api) getProfile(c *gin.Context) {
	caller := callerFrom(c)
	a.respondWithProfile(c, http.StatusOK, getprofile.BuildQuery(caller, caller))
}

func (a *api) updateProfile(c *gin.Context) {
	var request updateProfileRequest
	if err := bindJSON(c, &request); err != nil {
		a.writeError(c, err)
		return
	}

	caller := callerFrom(c)
	command := updateprofile.BuildCommand(
		caller,
		caller,
		request.Language,
		request.DisplayName,
		request.Email,
		request.PhoneNumber,
		a.now(),
	)

	if _, err := a.handlers.UpdateProfile.Handle(c.Request.Context(), command); err != nil {
		a.writeError(c, err)
		return
	}

	a.respondWithProfile(c, http.StatusOK, getprofile.BuildQuery(caller, caller))
}

func (a *api) respondWithProfile(c *gin.Context, status int, query getprofile.Query) {
	profile, err := a.handlers.GetProfile.Handle(c.Request.Context(), query)
	if err != nil {
		a.writeError(c, err)
		return
	}

	writeJSON(c, status, toProfileResponse(profile))
}
