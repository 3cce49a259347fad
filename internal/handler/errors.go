package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/veda242/taskmanager/internal/repository"
	"github.com/veda242/taskmanager/internal/utils"
)

// respondError is the single place where store and auth errors are
// translated into HTTP responses.  Keeping the mapping here stops the
// per-endpoint drift that creeps in when every handler picks its own
// status codes.  Expected errors get a specific status and message;
// anything else is logged server-side and surfaces as a generic 500 so
// internals never leak to the client.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Username already taken"})
	case errors.Is(err, repository.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Task not found"})
	case errors.Is(err, utils.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, echo.Map{"msg": "Token is not valid"})
	default:
		c.Logger().Errorf("internal error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"msg":   "Server error",
			"error": "internal server error",
		})
	}
}

// HTTPErrorHandler replaces echo's default error handler so that errors
// escaping a handler still produce the API's JSON shape instead of
// echo's {"message": ...}.  Full detail is logged; the client sees only
// a generic message.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); ok {
		_ = c.JSON(he.Code, echo.Map{"msg": fmt.Sprint(he.Message)})
		return
	}
	c.Logger().Errorf("unhandled error: %v", err)
	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"msg":   "Server error",
		"error": "internal server error",
	})
}
