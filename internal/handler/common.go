// Package handler contains the Echo handlers for the catalog API.
// Every handler follows the same shape: bind and validate input, call
// the repositories, map sentinel errors to HTTP status codes, shape
// the JSON response.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SenoussiAl/movie-catalog/internal/middleware"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
)

// dbTimeout bounds every request's database work.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// callerID extracts the authenticated user's id placed in the context
// by the JWT middleware.
func callerID(c echo.Context) (string, bool) {
	id, ok := c.Get(middleware.ContextUserID).(string)
	return id, ok && id != ""
}

// callerRole extracts the authenticated user's role; empty when the
// route is unauthenticated.
func callerRole(c echo.Context) string {
	role, _ := c.Get(middleware.ContextRole).(string)
	return role
}

// parsePage reads the page/limit query parameters, falling back to
// defaults on anything unparsable.
func parsePage(c echo.Context) repository.PageQuery {
	return repository.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
}

// respondError maps repository sentinels onto HTTP responses. Unknown
// errors become a 500 with the generic fallback message; the detail is
// logged server-side, never returned to the client.
func respondError(c echo.Context, err error, entity, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.JSON(http.StatusConflict, echo.Map{"error": entity + " already exists"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrGenreInUse):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete genre assigned to movies"})
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": fallback})
	}
}
