package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spendperks/rewards-api/internal/api/middleware"
	"github.com/spendperks/rewards-api/internal/core/domain"
)

// ctxSession extracts the session injected by the SessionAuth middleware.
// Presence proves the middleware ran; a handler registered on a gated route
// without it is a wiring bug, reported as 401 rather than a panic.
func ctxSession(c echo.Context) (domain.Session, error) {
	sess, ok := c.Get(middleware.SessionContextKey).(domain.Session)
	if !ok {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return sess, nil
}
