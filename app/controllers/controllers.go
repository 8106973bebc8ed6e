// Package controllers holds the HTTP edge of the store. Controllers bind
// and validate input, pull the principal out of the request, call the
// service layer, and translate its errors into JSON envelopes. No business
// rules live here.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/inkstore/app/services"
	"github.com/shashiranjanraj/inkstore/pkg/auth"
	"github.com/shashiranjanraj/inkstore/pkg/ctx"
	"github.com/shashiranjanraj/inkstore/pkg/middleware"
)

// principal returns the authenticated principal or writes a 401. Routes
// behind middleware.Auth always carry one; this is the belt to that brace.
func principal(c *ctx.Context) (auth.Principal, bool) {
	p, ok := middleware.PrincipalFromCtx(c.R)
	if !ok {
		c.Unauthorized()
	}
	return p, ok
}

// paramID parses a {id} route parameter. Writes a 404 on garbage, since a
// non-numeric id can never name a record.
func paramID(c *ctx.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.NotFound()
		return 0, false
	}
	return uint(id), true
}

// fail maps service errors onto HTTP responses.
func fail(c *ctx.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrAlreadyOwned):
		c.Error(http.StatusConflict, "product already purchased")
	case errors.Is(err, services.ErrLinkExpired):
		c.Error(http.StatusGone, "download link has expired")
	default:
		c.Error(http.StatusInternalServerError, "something went wrong")
	}
}
