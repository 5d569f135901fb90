package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smartblog/internal/auth"
	"smartblog/internal/errors"
	"smartblog/internal/model"
)

// currentUser returns the user the identity middleware resolved for this
// request. Missing means the route was wired without the middleware.
func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(auth.ContextKey).(*model.User)
	if !ok {
		httpErr := errors.MapErrorToHTTP(errors.ErrUnauthorized)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return user, nil
}

// domainError converts a service error into the standard response envelope.
func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// bindAndValidate decodes the request body and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
