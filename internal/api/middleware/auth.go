package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spendperks/rewards-api/internal/core/domain"
	"github.com/spendperks/rewards-api/internal/core/ports"
)

// SessionContextKey is where the resolved session is stored on the echo
// context for handlers to read.
const SessionContextKey = "session"

// SessionAuth resolves the request's session token against the session
// service and injects the session into context. Requests without a valid
// token of the given kind fail with 401.
func SessionAuth(sessions ports.SessionService, kind domain.SessionKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			sess, err := sessions.Resolve(c.Request().Context(), kind, token)
			if err != nil {
				return err
			}

			c.Set(SessionContextKey, *sess)
			return next(c)
		}
	}
}

// ExtractToken finds the session token, first match wins:
// Authorization bearer, X-Auth-Cookie header, JSON body "cookie" field,
// "cookie" query parameter. A consumed JSON body is restored so handlers can
// still bind it.
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1]
		}
	}

	if cookie := c.Request().Header.Get("X-Auth-Cookie"); cookie != "" {
		return cookie
	}

	if cookie := tokenFromBody(c); cookie != "" {
		return cookie
	}

	return c.QueryParam("cookie")
}

func tokenFromBody(c echo.Context) string {
	req := c.Request()
	if req.Body == nil || !strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return ""
	}

	// The whole body is read so the restored copy is byte-for-byte what
	// the handler would have bound.
	body, err := io.ReadAll(req.Body)
	req.Body.Close()
	req.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Cookie string `json:"cookie"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Cookie
}
