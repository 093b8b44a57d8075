package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pathshala/pathshala-api/internal/api/middleware"
)

// currentUserID extracts the subject id injected by the Authenticate
// middleware. An empty id means the middleware did not run; reject rather
// than proceed with an anonymous actor.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}
